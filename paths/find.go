// Package paths locates the input files of the asset tools (such as the
// sprite sheet) in the places they are conventionally kept.
package paths

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
)

// DefaultDir is where input files are expected when they cannot be found
// anywhere else.
const DefaultDir = "attached_assets"

// SearchDirs returns the directories Find looks in, in order.
func SearchDirs() []string {
	dirs := []string{
		".",
		DefaultDir,
		"datafiles",
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		dirs = append(dirs, filepath.Join(gopath, "src/badc0de.net/pkg/greeny-assets", DefaultDir))
	}
	return append(dirs, os.Args[0]+".runfiles/greeny_assets/"+DefaultDir)
}

// Find locates the passed file name and returns a relative or absolute path
// to it, or an empty string if it is not present in any of SearchDirs.
//
// For example, for "greeny-sprite-sheet.jpg" it may return
// "attached_assets/greeny-sprite-sheet.jpg".
func Find(fileName string) string {
	return FindIn(SearchDirs(), fileName)
}

// FindIn is Find over an explicit list of directories.
func FindIn(dirs []string, fileName string) string {
	for _, dir := range dirs {
		path := filepath.Join(dir, fileName)
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			glog.V(1).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Default is Find, falling back to fileName inside DefaultDir so that error
// messages name the conventional location.
func Default(fileName string) string {
	if path := Find(fileName); path != "" {
		return path
	}
	return filepath.Join(DefaultDir, fileName)
}
