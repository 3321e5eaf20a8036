package testutil

import (
	"fmt"
	"os"
	"path/filepath"

	"src.lmc.sh/pkg/must"
)

// TempDir creates a directory that is removed when the test finishes. Unlike
// testing.TB.TempDir, symlinks in the returned path are resolved, so it can be
// compared with os.Getwd.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "lmctest."))
	dir = must.OK1(filepath.EvalSymlinks(dir))
	c.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Fprintf(os.Stderr, "failed to remove temp dir %s: %v\n", dir, err)
		}
	})
	return dir
}

// Chdir changes into dir until the test finishes, and returns dir.
func Chdir(c Cleanuper, dir string) string {
	oldWd := must.OK1(os.Getwd())
	must.Chdir(dir)
	c.Cleanup(func() { must.Chdir(oldWd) })
	return dir
}

// InTempDir is equivalent to Chdir(c, TempDir(c)).
func InTempDir(c Cleanuper) string {
	return Chdir(c, TempDir(c))
}

// Dir describes a directory tree of test fixtures. A string value is the
// content of a regular file; a Dir value is a subdirectory.
type Dir map[string]any

// ApplyDir creates the tree in the current directory.
func ApplyDir(dir Dir) { applyDir(dir, ".") }

func applyDir(dir Dir, root string) {
	for name, file := range dir {
		path := filepath.Join(root, name)
		switch file := file.(type) {
		case string:
			must.OK(os.WriteFile(path, []byte(file), 0644))
		case Dir:
			must.OK(os.MkdirAll(path, 0755))
			applyDir(file, path)
		default:
			panic(fmt.Sprintf("fixture %s is neither string nor Dir: %v", path, file))
		}
	}
}
