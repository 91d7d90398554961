//go:build !go1.13 || windows
// +build !go1.13 windows

package imageprint

import (
	"flag"
	"image"

	"github.com/golang/glog"
)

var (
	forceITerm = flag.Bool("force_iterm", false, "value to force iterm detection to take (implementation variant: no rasterm)")
)

func isTermItermWez() bool {
	return *forceITerm
}

// PrintRasTerm is unavailable without rasterm and always returns false.
func PrintRasTerm(i image.Image) bool {
	glog.Warningf("rasterm not supported below Go 1.13 or on windows; not printing %v image", i.Bounds().Size())
	return false
}
