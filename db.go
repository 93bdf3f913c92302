package icontool

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"
)

// TrackDB is the upload tracking database. Each prepared icon gets a
// row keyed by the SHA1 of its normalized file; asset references are
// filled in after upload.
type TrackDB struct {
	db *sql.DB
}

func NewTrackDB(file string) (*TrackDB, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS icon (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL, variant TEXT NOT NULL, file TEXT NOT NULL, sha1 TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, bytes INTEGER NOT NULL, ready INTEGER NOT NULL, asset_id TEXT, status TEXT NOT NULL, notes TEXT)"); err != nil {
		return nil, err
	}

	return &TrackDB{
		db: db,
	}, nil
}

func (t *TrackDB) Close() error {
	return t.db.Close()
}

// IconRecord is one tracked icon file.
type IconRecord struct {
	Name    string
	Variant string // "Normal" or "Shiny"
	File    string
	SHA1    string
	Width   int
	Height  int
	Bytes   int64
	Ready   bool
	AssetID string
	Status  string
	Notes   string
}

// Record upserts a prepared icon by content hash and returns its row
// id. Re-preparing an identical file updates the existing row.
func (t *TrackDB) Record(rec IconRecord) (int64, error) {
	var id int64
	switch err := t.db.QueryRow("SELECT id FROM icon WHERE sha1 = ?", rec.SHA1).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := t.db.Exec("INSERT INTO icon (name, variant, file, sha1, width, height, bytes, ready, status, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			rec.Name, rec.Variant, rec.File, rec.SHA1, rec.Width, rec.Height, rec.Bytes, rec.Ready, rec.Status, rec.Notes)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if _, err := t.db.Exec("UPDATE icon SET name = ?, variant = ?, file = ?, width = ?, height = ?, bytes = ?, ready = ?, status = ?, notes = ? WHERE id = ?",
			rec.Name, rec.Variant, rec.File, rec.Width, rec.Height, rec.Bytes, rec.Ready, rec.Status, rec.Notes, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

// SetAssetID stores the uploaded asset reference for a tracked file
// and marks it uploaded.
func (t *TrackDB) SetAssetID(file, assetID string) error {
	result, err := t.db.Exec("UPDATE icon SET asset_id = ?, status = 'Uploaded' WHERE file = ?", assetID, file)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no tracked icon for %q", file)
	}
	return nil
}

// List returns every tracked icon ordered by name then variant.
func (t *TrackDB) List() ([]IconRecord, error) {
	rows, err := t.db.Query("SELECT name, variant, file, sha1, width, height, bytes, ready, IFNULL(asset_id, ''), status, IFNULL(notes, '') FROM icon ORDER BY name, variant")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []IconRecord
	for rows.Next() {
		var rec IconRecord
		if err := rows.Scan(&rec.Name, &rec.Variant, &rec.File, &rec.SHA1, &rec.Width, &rec.Height, &rec.Bytes, &rec.Ready, &rec.AssetID, &rec.Status, &rec.Notes); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Export writes the tracking spreadsheet for every tracked icon. The
// export is write-only: nothing in the pipeline reads it back.
func (t *TrackDB) Export(w io.Writer) error {
	records, err := t.List()
	if err != nil {
		return err
	}
	return WriteTracking(w, records)
}

var trackingHeader = []string{
	"Pokemon", "Type", "File", "Size", "Dimensions",
	"Ready", "Normal Asset ID", "Shiny Asset ID", "Status", "Notes",
}

// WriteTracking writes icon records as the fixed column tracking CSV.
func WriteTracking(w io.Writer, records []IconRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(trackingHeader); err != nil {
		return err
	}

	for _, rec := range records {
		ready := "yes"
		if !rec.Ready {
			ready = "no"
		}
		normal, shiny := rec.AssetID, ""
		if rec.Variant == "Shiny" {
			normal, shiny = "", rec.AssetID
		}
		if err := cw.Write([]string{
			rec.Name,
			rec.Variant,
			rec.File,
			fmt.Sprintf("%d bytes", rec.Bytes),
			fmt.Sprintf("%dx%d", rec.Width, rec.Height),
			ready,
			normal,
			shiny,
			rec.Status,
			rec.Notes,
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
