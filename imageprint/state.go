package imageprint

import (
	"fmt"
	"image"
	"strings"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"github.com/Rohesie/wallmount-slicer/dmi"
)

// Mode selects how images are drawn.
type Mode int

const (
	Mode24bit Mode = iota
	Mode256Color
	ModeNoColor
	ModeITerm
	ModeRasTerm
)

var modeNames = map[string]Mode{
	"24bit":   Mode24bit,
	"256":     Mode256Color,
	"nocolor": ModeNoColor,
	"iterm":   ModeITerm,
	"rasterm": ModeRasTerm,
}

// ParseMode maps a flag value such as "24bit" or "rasterm" to a Mode.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown print mode %q", s)
}

// Options controls PrintState.
type Options struct {
	Mode Mode
	// Blanks prints colored blanks instead of ascii art shading.
	Blanks bool
	// Downsize shrinks strips that don't fit the terminal.
	Downsize bool
}

// Print draws one image according to o.
func Print(img image.Image, name string, o Options) {
	if o.Downsize {
		img = fitTerminal(img, o.Mode == ModeRasTerm || o.Mode == ModeITerm)
	}
	switch o.Mode {
	case ModeRasTerm:
		if !PrintRasTerm(img) {
			Print24bit(img, o.Blanks)
		}
	case ModeITerm:
		PrintITerm(img, name)
	case ModeNoColor:
		PrintNoColor(img, o.Blanks)
	case Mode256Color:
		Print256Color(img, o.Blanks)
	default:
		Print24bit(img, o.Blanks)
	}
}

// PrintState draws every frame of s as a strip of its directions.
func PrintState(s *dmi.State, o Options) {
	for f := 0; f < s.Frames; f++ {
		label := fmt.Sprintf("%s [frame %d/%d]", s.Name, f+1, s.Frames)
		if f < len(s.Delays) {
			label += fmt.Sprintf(" delay %gcs", s.Delays[f])
		}
		fmt.Println(label)
		Print(Strip(s, f), s.Name+".png", o)
	}
}

func fitTerminal(img image.Image, pixels bool) image.Image {
	termSize, err := GetTermSize()
	if err != nil {
		glog.V(1).Infof("not downsizing, no terminal size: %v", err)
		return img
	}
	if pixels && termSize.WSXPixel != 0 && termSize.WSYPixel != 0 {
		// Prefer native size when the terminal draws real pixels.
		return resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.Lanczos3)
	}
	// Every pixel takes two columns.
	return resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.NearestNeighbor)
}
