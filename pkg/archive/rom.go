// Package archive holds the non-core helpers that get a ROM or a
// serialised save-state in and out of its on-disk, possibly-compressed
// form before handing a plain byte slice to internal/cartridge or
// gameboy.Deserialise. Nothing here is part of the core: file I/O and
// archive formats are host concerns.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// LoadROM reads path and, if it names a .7z archive, returns the first
// entry's decompressed bytes instead of the archive container itself.
// Any other extension is returned verbatim.
func LoadROM(path string) ([]byte, error) {
	if filepath.Ext(path) != ".7z" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("archive: read %s: %w", path, err)
		}
		return data, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("archive: stat %s: %w", path, err)
	}

	r, err := sevenzip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("archive: open 7z reader: %w", err)
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("archive: %s contains no entries", path)
	}

	entry, err := r.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("archive: open first entry: %w", err)
	}
	defer entry.Close()

	data, err := io.ReadAll(entry)
	if err != nil {
		return nil, fmt.Errorf("archive: decompress first entry: %w", err)
	}
	return data, nil
}
