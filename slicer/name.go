package slicer

import "strings"

// StateName derives an icon state name from an input path.
//
// Everything from the first dot on is dropped, so "v1.2.png" becomes "v1",
// then everything up to the last slash or backslash.
func StateName(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[:i]
	}
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	return path
}
