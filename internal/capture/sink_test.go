package capture

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSink_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "clips")
	sink := FileSink{Dir: dir}

	if err := sink.Save(Blob{Name: GIFName, Data: []byte("first")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := sink.Save(Blob{Name: GIFName, Data: []byte("second")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, GIFName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Expected the latest clip, got %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected only %s in the directory, got %d entries", GIFName, len(entries))
	}
}

func TestFileSink_RejectsUnnamedBlob(t *testing.T) {
	if err := (FileSink{Dir: t.TempDir()}).Save(Blob{Data: []byte("x")}); err == nil {
		t.Error("Expected an error for a blob without a name")
	}
}
