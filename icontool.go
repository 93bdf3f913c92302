/*
Package icontool is a library for maintaining the gfcx icon asset
pipeline: preparing custom icon images for upload and tracking the
results.
*/
package icontool

import "log"

type Icontool struct {
	db     *TrackDB
	logger *log.Logger
}

// New opens the tracking database at file and returns an Icontool
// using it. An empty file skips tracking entirely.
func New(file string, logger *log.Logger) (*Icontool, error) {
	var db *TrackDB
	if file != "" {
		var err error
		if db, err = NewTrackDB(file); err != nil {
			return nil, err
		}
	}
	return &Icontool{
		db:     db,
		logger: logger,
	}, nil
}

func (m *Icontool) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// DB exposes the tracking database, nil when tracking is disabled.
func (m *Icontool) DB() *TrackDB {
	return m.db
}
