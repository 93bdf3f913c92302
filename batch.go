package icontool

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gfcx/icontool/icon"
	"github.com/gfcx/icontool/template"
)

const (
	// PreviewFilename and TrackingFilename are written into the
	// batch output directory.
	PreviewFilename  = "preview_sheet.png"
	TrackingFilename = "upload_tracking.csv"
)

// Outcome is the result of preparing one file. A failed file carries
// its error; the batch always continues past it.
type Outcome struct {
	File   string
	Output string
	Err    error
	Result *icon.Result
	Record IconRecord
}

// BatchReport summarizes one batch run.
type BatchReport struct {
	Outcomes     []Outcome
	Prepared     int
	Failed       int
	OutputDir    string
	PreviewFile  string
	TrackingFile string
}

// PrepareFile normalizes a single icon image, writes it to output and
// records it in the tracking database when one is open.
func (m *Icontool) PrepareFile(input, output string, opts icon.Options) (*icon.Result, IconRecord, error) {
	src, _, err := icon.Load(input)
	if err != nil {
		return nil, IconRecord{}, fmt.Errorf("loading %s: %w", input, err)
	}

	normalized, result := icon.Normalize(src, opts)

	if err := icon.Save(output, normalized, opts); err != nil {
		return result, IconRecord{}, fmt.Errorf("saving %s: %w", output, err)
	}

	rec, err := recordFor(input, output, normalized, result)
	if err != nil {
		return result, rec, err
	}

	if m.db != nil {
		if _, err := m.db.Record(rec); err != nil {
			return result, rec, err
		}
	}

	for _, fix := range result.Fixes {
		m.logger.Printf("%s: %s\n", input, fix)
	}

	return result, rec, nil
}

// PrepareBatch normalizes every PNG in inputDir sequentially, in
// directory enumeration order. A failure on one file is captured in
// its outcome and the batch continues. The output directory gets the
// prepared icons plus a preview sheet and the tracking spreadsheet.
func (m *Icontool) PrepareBatch(inputDir, outputDir string, opts icon.Options) (*BatchReport, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("not a directory")
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		// Ignore hidden files, otherwise we end up fighting with
		// things like Spotlight, etc.
		if !e.Type().IsRegular() || e.Name()[0] == '.' {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no PNG files found in %s", inputDir)
	}

	if outputDir == "" {
		outputDir = filepath.Join(inputDir, "prepared")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	report := &BatchReport{OutputDir: outputDir}

	var previews []image.Image
	var labels []string

	for _, name := range files {
		input := filepath.Join(inputDir, name)
		output := filepath.Join(outputDir, name)

		o := Outcome{File: input, Output: output}
		result, rec, err := m.PrepareFile(input, output, opts)
		o.Result = result
		o.Record = rec
		o.Err = err

		if err != nil {
			m.logger.Printf("failed to prepare %s: %v\n", input, err)
			report.Failed++
		} else {
			report.Prepared++
			if prepared, _, err := icon.Load(output); err == nil {
				previews = append(previews, prepared)
				labels = append(labels, name)
			}
		}

		report.Outcomes = append(report.Outcomes, o)
	}

	if report.Prepared > 0 {
		report.PreviewFile = filepath.Join(outputDir, PreviewFilename)
		if err := icon.Save(report.PreviewFile, template.Preview(previews, labels), icon.Options{}); err != nil {
			return nil, err
		}

		report.TrackingFile = filepath.Join(outputDir, TrackingFilename)
		f, err := os.Create(report.TrackingFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var records []IconRecord
		for _, o := range report.Outcomes {
			if o.Err == nil {
				records = append(records, o.Record)
			}
		}
		if err := WriteTracking(f, records); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func recordFor(input, output string, m image.Image, result *icon.Result) (IconRecord, error) {
	sha, size, err := shaFile(output)
	if err != nil {
		return IconRecord{}, err
	}

	name, variant := splitIconName(input)

	notes := ""
	if len(result.Issues) > 0 {
		notes = strings.Join(result.Issues, "; ")
	}

	return IconRecord{
		Name:    name,
		Variant: variant,
		File:    filepath.Base(output),
		SHA1:    sha,
		Width:   m.Bounds().Dx(),
		Height:  m.Bounds().Dy(),
		Bytes:   size,
		Ready:   result.Ready(),
		Status:  "Pending Upload",
		Notes:   notes,
	}, nil
}

func shaFile(file string) (string, int64, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha1.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}

	return fmt.Sprintf("%X", h.Sum(nil)), size, nil
}

// splitIconName derives the icon name and variant from a filename
// like celebi_shiny.png.
func splitIconName(file string) (string, string) {
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	lower := strings.ToLower(stem)

	variant := "Normal"
	if strings.Contains(lower, "shiny") {
		variant = "Shiny"
	}

	lower = strings.ReplaceAll(lower, "_normal", "")
	lower = strings.ReplaceAll(lower, "_shiny", "")

	words := strings.Fields(strings.ReplaceAll(lower, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " "), variant
}
