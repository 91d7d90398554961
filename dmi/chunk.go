package dmi

// This file contains the PNG chunk plumbing needed to store the DMI
// description next to the spritesheet's pixel data.

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

const descriptionKeyword = "Description"

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ihdrEnd is the offset right after the IHDR chunk, which the PNG format
// requires to come first.
const ihdrEnd = 8 + 4 + 4 + 13 + 4

// insertDescription returns a copy of the PNG stream p with a zTXt chunk
// holding text placed right after IHDR.
func insertDescription(p []byte, text string) ([]byte, error) {
	if !bytes.HasPrefix(p, pngSignature) || len(p) < ihdrEnd || string(p[12:16]) != "IHDR" {
		return nil, errors.New("dmi: encoder produced an unexpected png stream")
	}

	latin1, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return nil, errors.Wrap(err, "dmi: description is not representable in latin-1")
	}

	data := &bytes.Buffer{}
	data.WriteString(descriptionKeyword)
	data.WriteByte(0) // keyword terminator
	data.WriteByte(0) // compression method: zlib
	zw := zlib.NewWriter(data)
	if _, err := zw.Write([]byte(latin1)); err != nil {
		return nil, errors.Wrap(err, "dmi: compressing description")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "dmi: compressing description")
	}

	out := &bytes.Buffer{}
	out.Grow(len(p) + data.Len() + 12)
	out.Write(p[:ihdrEnd])
	writeChunk(out, "zTXt", data.Bytes())
	out.Write(p[ihdrEnd:])
	return out.Bytes(), nil
}

func writeChunk(w *bytes.Buffer, typ string, data []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	w.Write(n[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	w.WriteString(typ)
	w.Write(data)
	binary.BigEndian.PutUint32(n[:], crc.Sum32())
	w.Write(n[:])
}

// readDescription walks the chunks of the PNG stream p and returns the text
// of the first Description chunk, either compressed (zTXt) or plain (tEXt).
func readDescription(p []byte) (string, error) {
	if !bytes.HasPrefix(p, pngSignature) {
		return "", errors.Wrap(ErrMalformed, "not a png stream")
	}
	rest := p[len(pngSignature):]
	for len(rest) >= 12 {
		n := binary.BigEndian.Uint32(rest[:4])
		typ := string(rest[4:8])
		if uint64(len(rest)) < 12+uint64(n) {
			return "", errors.Wrapf(ErrMalformed, "truncated %s chunk", typ)
		}
		data := rest[8 : 8+n]
		rest = rest[12+n:]

		switch typ {
		case "zTXt", "tEXt":
			kw := bytes.IndexByte(data, 0)
			if kw < 0 || string(data[:kw]) != descriptionKeyword {
				continue
			}
			text := data[kw+1:]
			if typ == "zTXt" {
				if len(text) < 1 || text[0] != 0 {
					return "", errors.Wrap(ErrMalformed, "unknown zTXt compression method")
				}
				zr, err := zlib.NewReader(bytes.NewReader(text[1:]))
				if err != nil {
					return "", errors.Wrapf(ErrMalformed, "description: %v", err)
				}
				text, err = ioutil.ReadAll(io.LimitReader(zr, 16<<20))
				zr.Close()
				if err != nil {
					return "", errors.Wrapf(ErrMalformed, "description: %v", err)
				}
			}
			return charmap.ISO8859_1.NewDecoder().String(string(text))
		case "IEND":
			return "", errors.Wrap(ErrMalformed, "no Description chunk")
		}
	}
	return "", errors.Wrap(ErrMalformed, "no Description chunk")
}
