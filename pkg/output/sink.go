package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Content types for published frames
const (
	ContentTypeBMP = "image/bmp"
	ContentTypePNG = "image/png"
)

// Sink stores an encoded frame under name
type Sink interface {
	Write(ctx context.Context, name string, data []byte, contentType string) error
}

// FileSink writes frames below Dir. Each file appears atomically: data goes to a
// temporary file in the same directory which is renamed into place, so a failed
// write never leaves a truncated image behind.
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink rooted at dir ("" means the working directory)
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Write implements Sink
func (fs *FileSink) Write(ctx context.Context, name string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(fs.Dir, name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}

// MultiSink writes every frame to each of its sinks in order
type MultiSink []Sink

// Write implements Sink. All sinks are attempted; their errors are joined.
func (ms MultiSink) Write(ctx context.Context, name string, data []byte, contentType string) error {
	var errs []error
	for _, s := range ms {
		if err := s.Write(ctx, name, data, contentType); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FrameName returns the output name for frame i of total. A single frame keeps
// base unchanged; animations get a zero padded index before the extension.
func FrameName(base string, i, total int) string {
	if total <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(base, ext), i, ext)
}

// PreviewName returns the thumbnail name for a frame name
func PreviewName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "_preview.png"
}
