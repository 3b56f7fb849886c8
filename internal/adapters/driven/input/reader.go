// Package input reads submission text files from disk.
package input

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.SubmissionReader = (*Reader)(nil)

var gzipMagic = []byte{0x1f, 0x8b}

// Reader loads plain or gzip-compressed submissions.
type Reader struct{}

// NewReader creates a new submission reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the full text of the submission at path. Files ending in
// .gz or starting with the gzip magic bytes are decompressed.
func (r *Reader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open submission: %w", err)
	}
	defer f.Close()

	brd := bufio.NewReader(f)
	var src io.Reader = brd

	head, _ := brd.Peek(len(gzipMagic))
	if strings.HasSuffix(strings.ToLower(path), ".gz") || bytes.Equal(head, gzipMagic) {
		zr, err := pgzip.NewReader(brd)
		if err != nil {
			return "", fmt.Errorf("decompress %s: %w", path, err)
		}
		defer zr.Close()
		src = zr
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read submission: %w", err)
	}
	return string(data), nil
}
