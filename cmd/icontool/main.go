package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/gfcx/icontool"
	"github.com/gfcx/icontool/grid"
	"github.com/gfcx/icontool/icon"
	"github.com/gfcx/icontool/lookup"
	"github.com/gfcx/icontool/sheet"
	"github.com/gfcx/icontool/template"
)

const defaultDB = "icontool.db"

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func printRegular(w io.Writer, a grid.RegularAddress, name string) {
	if name != "" {
		fmt.Fprintf(w, "Name: %s\n", name)
	}
	fmt.Fprintf(w, "Icon Number: %d (regular)\n", a.Index)
	fmt.Fprintf(w, "Grid Position: column %d of 0-%d, row %d\n", a.Column, grid.RegularColumns-1, a.Row)

	asset, ok := grid.SheetAsset(a.Sheet)
	if !ok {
		asset = "Unknown"
	}
	fmt.Fprintf(w, "Sheet: %d (%s%s), local column %d, local row %d\n",
		a.Sheet, lookup.AssetPrefix, asset, a.SheetColumn, a.SheetRow)
	fmt.Fprintf(w, "Normal Sprite: (%d, %d) %dx%d\n", a.Normal.X, a.Normal.Y, a.Normal.Width, a.Normal.Height)
	fmt.Fprintf(w, "Shiny Sprite: (%d, %d) %dx%d\n", a.Shiny.X, a.Shiny.Y, a.Shiny.Width, a.Shiny.Height)
}

func printEgg(w io.Writer, a grid.EggAddress, name string) {
	if name != "" {
		fmt.Fprintf(w, "Name: %s\n", name)
	}
	fmt.Fprintf(w, "Icon Number: %d (egg, local index %d)\n", a.Index, a.LocalIndex)
	fmt.Fprintf(w, "Grid Position: column %d of 0-%d, row %d\n", a.Column, grid.EggColumns-1, a.Row)
	fmt.Fprintf(w, "Sheet: %s%s\n", lookup.AssetPrefix, grid.EggSheetAsset())
	fmt.Fprintf(w, "Sprite: (%d, %d) %dx%d\n", a.Sprite.X, a.Sprite.Y, a.Sprite.Width, a.Sprite.Height)
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "icontool"
	app.Usage = "gfcx icon asset pipeline utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"ICONTOOL_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to tracking database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "calc",
			Usage:     "Calculate sheet position for an icon number",
			ArgsUsage: "INDEX [NAME]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, "calc", 1)
				}

				index, err := strconv.Atoi(c.Args().First())
				if err != nil || index < 0 {
					return cli.Exit(fmt.Sprintf("invalid icon number %q", c.Args().First()), 1)
				}

				if grid.IsEgg(index) {
					printEgg(c.App.Writer, grid.Egg(index), c.Args().Get(1))
				} else {
					printRegular(c.App.Writer, grid.Regular(index), c.Args().Get(1))
				}

				return nil
			},
		},
		{
			Name:      "template",
			Usage:     "Generate blank template sheets with guides",
			ArgsUsage: "regular|egg|reference|all",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "rows",
					Value: template.DefaultRows,
					Usage: "number of rows",
				},
				&cli.StringFlag{
					Name:  "out",
					Usage: "output file",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, "template", 1)
				}

				var m image.Image
				var out string

				switch kind := c.Args().First(); kind {
				case "regular":
					m, out = template.Regular(c.Int("rows")), "sheet_template.png"
				case "egg":
					m, out = template.Egg(c.Int("rows")), "egg_template.png"
				case "reference":
					m, out = template.Reference(), "sprite_reference.png"
				case "all":
					// Every guide at once, default filenames only.
					for _, tmpl := range []struct {
						m   image.Image
						out string
					}{
						{template.Regular(c.Int("rows")), "sheet_template.png"},
						{template.Egg(c.Int("rows")), "egg_template.png"},
						{template.Reference(), "sprite_reference.png"},
					} {
						if err := icon.Save(tmpl.out, tmpl.m, icon.Options{}); err != nil {
							return cli.Exit(err, 1)
						}
						fmt.Fprintf(c.App.Writer, "created %s (%dx%d)\n", tmpl.out, tmpl.m.Bounds().Dx(), tmpl.m.Bounds().Dy())
					}
					return nil
				default:
					return cli.Exit(fmt.Sprintf("unknown template type %q", kind), 1)
				}

				if c.String("out") != "" {
					out = c.String("out")
				}

				if err := icon.Save(out, m, icon.Options{}); err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Fprintf(c.App.Writer, "created %s (%dx%d)\n", out, m.Bounds().Dx(), m.Bounds().Dy())

				return nil
			},
		},
		{
			Name:      "validate",
			Usage:     "Validate a sheet image against the grid layout",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "type",
					Value: string(sheet.Regular),
					Usage: "sheet type, regular or egg",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, "validate", 1)
				}

				kind := sheet.Kind(c.String("type"))
				if kind != sheet.Regular && kind != sheet.Egg {
					return cli.Exit(fmt.Sprintf("invalid sheet type %q", c.String("type")), 1)
				}

				m, err := openImage(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				r := sheet.Validate(m, kind)

				w := c.App.Writer
				for _, e := range r.Errors {
					fmt.Fprintf(w, "error: %s\n", e)
				}
				for _, warning := range r.Warnings {
					fmt.Fprintf(w, "warning: %s\n", warning)
				}
				if n := len(r.EmptyCells); n > 0 {
					fmt.Fprintf(w, "%d empty cells:\n", n)
					for i, cell := range r.EmptyCells {
						if i == 10 {
							fmt.Fprintf(w, "  ... and %d more\n", n-10)
							break
						}
						fmt.Fprintf(w, "  - %s\n", cell)
					}
				}

				if !r.OK() {
					return cli.Exit("sheet failed validation", 1)
				}

				fmt.Fprintf(w, "%dx%d grid, no structural errors\n", r.Columns, r.Rows)

				return nil
			},
		},
		{
			Name:      "prepare",
			Usage:     "Normalize icon images for upload",
			ArgsUsage: "FILE|DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Usage: "output file or directory",
				},
				&cli.IntFlag{
					Name:  "width",
					Value: icon.DefaultOptions().TargetWidth,
					Usage: "target canvas width",
				},
				&cli.IntFlag{
					Name:  "height",
					Value: icon.DefaultOptions().TargetHeight,
					Usage: "target canvas height",
				},
				&cli.IntFlag{
					Name:  "padding",
					Value: icon.DefaultOptions().MinPadding,
					Usage: "minimum padding in pixels",
				},
				&cli.IntFlag{
					Name:  "tolerance",
					Value: icon.DefaultOptions().Tolerance,
					Usage: "background color tolerance",
				},
				&cli.BoolFlag{
					Name:  "quantize",
					Usage: "reduce output to a 256 color palette",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, "prepare", 1)
				}

				opts := icon.Options{
					TargetWidth:  c.Int("width"),
					TargetHeight: c.Int("height"),
					MinPadding:   c.Int("padding"),
					Tolerance:    c.Int("tolerance"),
					Quantize:     c.Bool("quantize"),
				}

				m, err := icontool.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				input := c.Args().First()
				info, err := os.Stat(input)
				if err != nil {
					return cli.Exit(err, 1)
				}

				w := c.App.Writer

				if info.IsDir() {
					report, err := m.PrepareBatch(input, c.String("out"), opts)
					if err != nil {
						return cli.Exit(err, 1)
					}

					for _, o := range report.Outcomes {
						if o.Err != nil {
							fmt.Fprintf(w, "failed: %s: %v\n", o.File, o.Err)
						}
					}
					fmt.Fprintf(w, "prepared %d of %d icons in %s\n",
						report.Prepared, len(report.Outcomes), report.OutputDir)
					if report.PreviewFile != "" {
						fmt.Fprintf(w, "preview: %s\ntracking: %s\n", report.PreviewFile, report.TrackingFile)
					}

					return nil
				}

				output := c.String("out")
				if output == "" {
					ext := filepath.Ext(input)
					output = input[:len(input)-len(ext)] + "_prepared.png"
				}

				result, rec, err := m.PrepareFile(input, output, opts)
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, fix := range result.Fixes {
					fmt.Fprintf(w, "fixed: %s\n", fix)
				}
				for _, warning := range result.Warnings {
					fmt.Fprintf(w, "warning: %s\n", warning)
				}
				for _, issue := range result.Issues {
					fmt.Fprintf(w, "issue: %s\n", issue)
				}
				fmt.Fprintf(w, "saved %s (%dx%d, %d bytes)\n", output, rec.Width, rec.Height, rec.Bytes)

				return nil
			},
		},
		{
			Name:      "add",
			Usage:     "Add a custom icon entry to the asset table",
			ArgsUsage: "KEY NORMAL_ID [SHINY_ID] NAME",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "table",
					Usage:    "path to the asset table file",
					Required: true,
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, "add", 1)
				}

				key, err := strconv.Atoi(c.Args().Get(0))
				if err != nil {
					return cli.Exit(fmt.Sprintf("invalid key %q", c.Args().Get(0)), 1)
				}

				normalID := c.Args().Get(1)
				shinyID := ""
				name := c.Args().Get(2)
				if c.NArg() > 3 {
					shinyID = c.Args().Get(2)
					name = c.Args().Get(3)
				}

				tbl, err := lookup.ParseFile(c.String("table"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := tbl.Insert(lookup.Normal, lookup.Entry{Key: key, AssetID: normalID, Comment: name}); err != nil {
					return cli.Exit(err, 1)
				}
				if shinyID != "" {
					if err := tbl.Insert(lookup.Shiny, lookup.Entry{Key: key, AssetID: shinyID, Comment: name}); err != nil {
						return cli.Exit(err, 1)
					}
				}

				if err := tbl.WriteFile(c.String("table")); err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Fprintf(c.App.Writer, "added %s as key %d (icon #%d in game)\n", name, key, key-1)

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List custom icon entries in the asset table",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "table",
					Usage:    "path to the asset table file",
					Required: true,
				},
			},
			Action: func(c *cli.Context) error {
				tbl, err := lookup.ParseFile(c.String("table"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				shiny := make(map[int]struct{})
				for _, e := range tbl.Entries(lookup.Shiny) {
					shiny[e.Key] = struct{}{}
				}

				w := c.App.Writer
				fmt.Fprintf(w, "%-6s %-8s %-25s %-10s %s\n", "Key", "Icon #", "Name", "Has Shiny", "Asset ID")
				entries := tbl.Entries(lookup.Normal)
				for _, e := range entries {
					hasShiny := "no"
					if _, ok := shiny[e.Key]; ok {
						hasShiny = "yes"
					}
					fmt.Fprintf(w, "%-6d %-8d %-25s %-10s %s\n", e.Key, e.Key-1, e.Comment, hasShiny, e.AssetID)
				}
				fmt.Fprintf(w, "total: %d custom icons\n", len(entries))

				for _, gap := range tbl.Gaps() {
					if gap[0] == gap[1] {
						fmt.Fprintf(w, "free slot: %d\n", gap[0])
					} else {
						fmt.Fprintf(w, "free slots: %d-%d\n", gap[0], gap[1])
					}
				}
				if len(entries) > 0 {
					fmt.Fprintf(w, "next sequential slot: %d\n", tbl.NextSlot(entries[0].Key))
				}

				return nil
			},
		},
		{
			Name:  "export",
			Usage: "Export the upload tracking spreadsheet",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Usage: "output CSV file, stdout when omitted",
				},
			},
			Action: func(c *cli.Context) error {
				m, err := icontool.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				var w io.Writer = c.App.Writer
				if out := c.String("out"); out != "" {
					f, err := os.Create(out)
					if err != nil {
						return cli.Exit(err, 1)
					}
					defer f.Close()
					w = f
				}

				if err := m.DB().Export(w); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
