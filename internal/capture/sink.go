package capture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes clips into Dir under their blob name.
type FileSink struct {
	Dir string
}

// Save writes blob to Dir, creating the directory when missing. A previous
// clip with the same name is replaced.
func (s FileSink) Save(blob Blob) error {
	if blob.Name == "" {
		return errors.New("saving capture: blob has no name")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("creating capture dir %q: %w", s.Dir, err)
	}
	path := filepath.Join(s.Dir, blob.Name)
	tmp, err := os.CreateTemp(s.Dir, blob.Name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %q: %w", path, err)
	}
	if _, err := tmp.Write(blob.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming into %q: %w", path, err)
	}
	return nil
}
