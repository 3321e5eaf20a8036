package logutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.lmc.sh/pkg/testutil"
)

func TestLogger(t *testing.T) {
	logger := GetLogger("[foo] ")
	var sb strings.Builder
	SetOutput(&sb)
	t.Cleanup(func() { SetOutput(io.Discard) })

	logger.Println("hello")

	if !strings.Contains(sb.String(), "[foo] ") || !strings.HasSuffix(sb.String(), "hello\n") {
		t.Errorf("got log output %q", sb.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	dir := testutil.TempDir(t)
	logger := GetLogger("[bar] ")
	fname := filepath.Join(dir, "log")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("to file")
	// Closes the file.
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "[bar] ") {
		t.Errorf("got log file content %q", content)
	}

	if err := SetOutputFile(filepath.Join(dir, "no", "such", "dir")); err == nil {
		t.Errorf("SetOutputFile to a bad path returned nil error")
	}
}
