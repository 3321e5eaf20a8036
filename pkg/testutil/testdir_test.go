package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"src.lmc.sh/pkg/must"
)

func TestTempDir(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)

	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		t.Fatalf("TempDir returns %q, which is not a directory", dir)
	}
	if resolved := must.OK1(filepath.EvalSymlinks(dir)); resolved != dir {
		t.Errorf("TempDir returns %q, but it resolves to %q", dir, resolved)
	}
	must.OK(os.WriteFile(filepath.Join(dir, "prog.lmc"), []byte("HLT"), 0600))

	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("dir %q still exists after cleanup", dir)
	}
}

func TestChdir(t *testing.T) {
	dir := TempDir(t)
	original := must.OK1(os.Getwd())

	c := &cleanuper{}
	if got := Chdir(c, dir); got != dir {
		t.Errorf("Chdir returns %q, want %q", got, dir)
	}
	if wd := must.OK1(os.Getwd()); wd != dir {
		t.Errorf("working directory is %q, want %q", wd, dir)
	}

	c.runCleanups()
	if wd := must.OK1(os.Getwd()); wd != original {
		t.Errorf("working directory is %q after cleanup, want %q", wd, original)
	}
}

func TestApplyDir(t *testing.T) {
	InTempDir(t)

	ApplyDir(Dir{
		"add.lmc": "INP\nADD ONE\nOUT\nHLT\nONE DAT 1\n",
		"lib": Dir{
			"empty.lmc": "",
			"nested":    Dir{"loop.lmc": "LOOP BRA LOOP\n"},
		},
	})

	for name, want := range map[string]string{
		"add.lmc":             "INP\nADD ONE\nOUT\nHLT\nONE DAT 1\n",
		"lib/empty.lmc":       "",
		"lib/nested/loop.lmc": "LOOP BRA LOOP\n",
	} {
		if got := must.ReadFileString(name); got != want {
			t.Errorf("content of %s is %q, want %q", name, got, want)
		}
	}
}

func TestApplyDir_PanicsOnBadValue(t *testing.T) {
	InTempDir(t)
	defer func() {
		if recover() == nil {
			t.Errorf("ApplyDir did not panic")
		}
	}()
	ApplyDir(Dir{"bad": 42})
}

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}
