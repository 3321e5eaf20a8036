// Package errutil contains helpers for combining errors.
package errutil

import "strings"

// Multi combines errors into one. Nil errors are dropped; if nothing is left
// Multi returns nil, and a single remaining error is returned as is. Errors
// previously returned by Multi are flattened, so
//
//	Multi(Multi(err1, err2), err3)
//
// is the same as Multi(err1, err2, err3). The result supports [errors.Is] and
// [errors.As] through its Unwrap method.
func Multi(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if multi, ok := err.(multiError); ok {
			nonNil = append(nonNil, multi...)
		} else {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return multiError(nonNil)
	}
}

type multiError []error

func (me multiError) Error() string {
	var sb strings.Builder
	sb.WriteString("multiple errors: ")
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

func (me multiError) Unwrap() []error { return me }
