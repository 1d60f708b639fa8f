package output

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSink_Write(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir)

	data := []byte("BM fake frame")
	if err := sink.Write(context.Background(), "frames/image.bmp", data, ContentTypeBMP); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "frames", "image.bmp"))
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Expected %q, got %q", data, got)
	}

	// Overwrite in place and leave no temp files behind
	if err := sink.Write(context.Background(), "frames/image.bmp", []byte("second"), ContentTypeBMP); err != nil {
		t.Fatalf("Unexpected error on overwrite: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "frames"))
	if len(entries) != 1 {
		t.Errorf("Expected only the final file, found %d entries", len(entries))
	}
}

func TestFileSink_Cancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileSink(dir).Write(ctx, "image.bmp", []byte("x"), ContentTypeBMP)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "image.bmp")); !errors.Is(err, os.ErrNotExist) {
		t.Error("Expected no file from a cancelled write")
	}
}

// recordingSink remembers what it was asked to write
type recordingSink struct {
	names []string
	err   error
}

func (r *recordingSink) Write(ctx context.Context, name string, data []byte, contentType string) error {
	r.names = append(r.names, name)
	return r.err
}

func TestMultiSink(t *testing.T) {
	failing := &recordingSink{err: errors.New("bucket gone")}
	ok := &recordingSink{}

	err := MultiSink{failing, ok}.Write(context.Background(), "a.bmp", nil, ContentTypeBMP)
	if err == nil || err.Error() != "bucket gone" {
		t.Errorf("Expected the failing sink's error, got %v", err)
	}
	if len(ok.names) != 1 {
		t.Error("Expected later sinks to run after a failure")
	}

	if err := (MultiSink{ok}).Write(context.Background(), "b.bmp", nil, ContentTypeBMP); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestFrameName(t *testing.T) {
	tests := []struct {
		base     string
		i, total int
		expected string
	}{
		{"image.bmp", 0, 1, "image.bmp"},
		{"image.bmp", 0, 10, "image_0000.bmp"},
		{"out/frame.bmp", 12, 24, "out/frame_0012.bmp"},
		{"noext", 3, 5, "noext_0003"},
	}

	for _, tt := range tests {
		if got := FrameName(tt.base, tt.i, tt.total); got != tt.expected {
			t.Errorf("FrameName(%q, %d, %d) = %q, expected %q", tt.base, tt.i, tt.total, got, tt.expected)
		}
	}

	if got := PreviewName("out/frame_0001.bmp"); got != "out/frame_0001_preview.png" {
		t.Errorf("Unexpected preview name %q", got)
	}
}
