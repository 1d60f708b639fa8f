package bitmap

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	pixelOffset    = fileHeaderSize + infoHeaderSize
	bitsPerPixel   = BytesPerPixel * 8
)

// RowPadding returns the zero bytes appended to each row to reach a 4-byte boundary
func RowPadding(width int) int {
	return (4 - (width*BytesPerPixel)%4) % 4
}

// FileSize returns the encoded size in bytes of a width x height image
func FileSize(width, height int) int {
	return pixelOffset + (width*BytesPerPixel+RowPadding(width))*height
}

// fileHeader is the 14-byte BITMAPFILEHEADER
type fileHeader struct {
	Signature [2]byte
	FileSize  uint32
	Reserved  uint32
	Offset    uint32
}

// infoHeader is the 40-byte BITMAPINFOHEADER
type infoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// Encode writes fb as an uncompressed 24-bit bottom-up BMP
func Encode(w io.Writer, fb *Framebuffer) error {
	if fb == nil || fb.Width <= 0 || fb.Height <= 0 {
		return fmt.Errorf("%w: nothing to encode", ErrInvalidSize)
	}
	if len(fb.Pix) < fb.Stride*fb.Height || fb.Stride < fb.Width*BytesPerPixel {
		return fmt.Errorf("%w: buffer of %d bytes is too small for %dx%d", ErrInvalidSize, len(fb.Pix), fb.Width, fb.Height)
	}

	bw := bufio.NewWriter(w)

	fh := fileHeader{
		Signature: [2]byte{'B', 'M'},
		FileSize:  uint32(FileSize(fb.Width, fb.Height)),
		Offset:    pixelOffset,
	}
	ih := infoHeader{
		Size:         infoHeaderSize,
		Width:        int32(fb.Width),
		Height:       int32(fb.Height),
		Planes:       1,
		BitsPerPixel: bitsPerPixel,
	}
	if err := binary.Write(bw, binary.LittleEndian, fh); err != nil {
		return fmt.Errorf("failed to write file header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, ih); err != nil {
		return fmt.Errorf("failed to write info header: %w", err)
	}

	padding := make([]byte, RowPadding(fb.Width))
	row := make([]byte, fb.Width*BytesPerPixel)

	// Rows go out bottom first, each pixel as B, G, R
	for y := fb.Height - 1; y >= 0; y-- {
		src := fb.Pix[y*fb.Stride:]
		for x := 0; x < fb.Width; x++ {
			i := x * BytesPerPixel
			row[i] = src[i+2]
			row[i+1] = src[i+1]
			row[i+2] = src[i]
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", y, err)
		}
		if _, err := bw.Write(padding); err != nil {
			return fmt.Errorf("failed to write row %d padding: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush bitmap: %w", err)
	}
	return nil
}

// EncodeBytes returns the BMP encoding of fb
func EncodeBytes(fb *Framebuffer) ([]byte, error) {
	var buf bytes.Buffer
	if fb != nil && fb.Width > 0 && fb.Height > 0 {
		buf.Grow(FileSize(fb.Width, fb.Height))
	}
	if err := Encode(&buf, fb); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
