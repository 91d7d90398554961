package frames

import (
	"bytes"
	"fmt"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Format is one of the supported input encodings.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatGIF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatGIF:
		return "gif"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".gif":
		return FormatGIF, nil
	}
	return FormatUnknown, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
}

var (
	pngMagic   = []byte("\x89PNG\r\n\x1a\n")
	gif87Magic = []byte("GIF87a")
	gif89Magic = []byte("GIF89a")
)

// Sniff picks the format by looking at the leading bytes of the content.
func Sniff(b []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(b, pngMagic):
		return FormatPNG, nil
	case bytes.HasPrefix(b, gif87Magic), bytes.HasPrefix(b, gif89Magic):
		return FormatGIF, nil
	}
	return FormatUnknown, ErrUnsupportedFormat
}

// Decode reads a sheet of the passed format. PNG sheets become a static set,
// GIF sheets an animated one with every frame composited onto the full
// canvas.
func Decode(r io.Reader, f Format) (*Set, error) {
	switch f {
	case FormatPNG:
		img, err := png.Decode(r)
		if err != nil {
			return nil, errors.Wrapf(ErrDecode, "png: %v", err)
		}
		return Static(img), nil
	case FormatGIF:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrapf(ErrDecode, "gif: %v", err)
		}
		g, err := gif.DecodeAll(bytes.NewReader(b))
		if err != nil {
			if noFrames(b, err) {
				return nil, errors.Wrap(ErrEmptyAnimation, "gif")
			}
			return nil, errors.Wrapf(ErrDecode, "gif: %v", err)
		}
		fr, err := composite(g)
		if err != nil {
			return nil, err
		}
		glog.V(1).Infof("decoded gif with %d frames", len(fr))
		return Animated(fr)
	}
	return nil, ErrUnsupportedFormat
}

// noFrames reports whether a DecodeAll failure is a well-formed GIF that
// ends without any image.
func noFrames(b []byte, err error) bool {
	if !strings.Contains(err.Error(), "missing image data") {
		return false
	}
	_, cerr := gif.DecodeConfig(bytes.NewReader(b))
	return cerr == nil
}

// Open decodes the sheet at path, choosing the decoder by extension.
func Open(path string) (*Set, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "opening %s: %v", path, err)
	}
	defer file.Close()

	s, err := Decode(file, f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return s, nil
}

// Decoder produces a frame set for an input path.
type Decoder interface {
	Decode(path string) (*Set, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string) (*Set, error)

func (f DecoderFunc) Decode(path string) (*Set, error) {
	return f(path)
}

// FileDecoder reads sheets from the local filesystem with Open.
var FileDecoder Decoder = DecoderFunc(Open)
