// Package must contains helpers that panic instead of returning errors. They
// are meant for tests, where a failed setup step is a bug in the test.
package must

import "os"

// OK panics if err is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 returns v, panicking if err is not nil.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 returns v1 and v2, panicking if err is not nil.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// Pipe wraps os.Pipe.
func Pipe() (r, w *os.File) { return OK2(os.Pipe()) }

// Chdir wraps os.Chdir.
func Chdir(dir string) { OK(os.Chdir(dir)) }

// ReadFileString returns the content of a file as a string.
func ReadFileString(name string) string { return string(OK1(os.ReadFile(name))) }
