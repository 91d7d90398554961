// Package paths locates the files the tools need, such as the layout
// configuration, without the user passing their location.
package paths

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
)

// PossibleDirs returns the directories searched by Find, in order: the
// directory holding the running executable, the directory of the path the
// program was started with (these differ when started through a symlink),
// and the working directory.
func PossibleDirs() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	if len(os.Args) > 0 {
		dirs = append(dirs, filepath.Dir(os.Args[0]))
	}
	dirs = append(dirs, ".")
	return dirs
}

// FindIn returns the first path under dirs where fileName exists, or an
// empty string.
func FindIn(fileName string, dirs []string) string {
	for _, dir := range dirs {
		path := filepath.Join(dir, fileName)
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Find locates the passed file in PossibleDirs and returns a path to it. If
// it can't be found, an empty string is returned.
func Find(fileName string) string {
	return FindIn(fileName, PossibleDirs())
}
