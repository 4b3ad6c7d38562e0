package finkeeper

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// DefaultDataFile is the name of the data file, relative to the working directory.
const DefaultDataFile = "saved_data"

// LoadRecords reads the records saved in the file at path.
//
// Loading never fails: a missing or unreadable file gives an empty collection
// and a damaged file gives the records before the damage.
func LoadRecords(path string) *Records {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("could not open data file, starting empty", "path", path, "error", err)
		}
		return NewRecords()
	}
	defer f.Close()

	rs, err := DecodeRecords(f)
	if err != nil {
		slog.Debug("data file partially loaded", "path", path, "records", rs.Len(), "error", err)
	}
	return rs
}

// SaveRecords writes all records to the file at path, replacing its content.
//
// The file is truncated before being written: a crash in the middle of the
// write leaves a truncated file.
func SaveRecords(path string, rs *Records) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not open data file %q for writing: %w", path, err)
	}
	if err := EncodeRecords(f, rs); err != nil {
		f.Close()
		return fmt.Errorf("could not write data file %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close data file %q: %w", path, err)
	}
	return nil
}
