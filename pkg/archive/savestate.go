package archive

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// CompressSaveState brotli-compresses a gameboy.Core.Serialise blob for
// compact on-disk storage. The core itself never compresses its own
// output; that would bind the core's wire format to a specific codec.
func CompressSaveState(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("archive: brotli write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("archive: brotli close: %w", err)
	}
	return buf.Bytes(), nil
}

// DecompressSaveState reverses CompressSaveState, ready to be handed to
// gameboy.Deserialise.
func DecompressSaveState(data []byte) ([]byte, error) {
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("archive: brotli read: %w", err)
	}
	return out, nil
}
