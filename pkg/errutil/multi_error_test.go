package errutil

import (
	"errors"
	"io/fs"
	"testing"

	"src.lmc.sh/pkg/tt"
)

var (
	errMissing = errors.New("missing.lmc: not found")
	errBadByte = errors.New("bad.lmc: invalid UTF-8")
	errTheme   = errors.New("unknown token type \"opcode\"")
)

func TestMulti(t *testing.T) {
	tt.Test(t, Multi,
		tt.Args().Rets(nil),
		tt.Args(nil, nil).Rets(nil),
		tt.Args(errMissing).Rets(errMissing),
		tt.Args(nil, errMissing, nil).Rets(errMissing),
		tt.Args(errMissing, errBadByte).Rets(multiError{errMissing, errBadByte}),
		tt.Args(Multi(errMissing, errBadByte), errTheme).
			Rets(multiError{errMissing, errBadByte, errTheme}),
	)
}

func TestMulti_Error(t *testing.T) {
	err := Multi(errMissing, errTheme)
	want := `multiple errors: missing.lmc: not found; unknown token type "opcode"`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestMulti_Unwrap(t *testing.T) {
	err := Multi(errBadByte, &fs.PathError{Op: "open", Path: "x.lmc", Err: fs.ErrNotExist})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(%v, fs.ErrNotExist) = false", err)
	}
	if !errors.Is(err, errBadByte) {
		t.Errorf("errors.Is(%v, errBadByte) = false", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) || pathErr.Path != "x.lmc" {
		t.Errorf("errors.As did not find the *fs.PathError")
	}
}
