// Package tt supports table-driven tests with little boilerplate.
//
// A typical use of this package looks like this:
//
//	// Function being tested
//	func Neg(i int) { return -i }
//
//	func TestNeg(t *testing.T) {
//		tt.Test(t, Neg,
//			// Unnamed test case
//			Args(1).Rets(-1),
//			// Named test case
//			It("returns 0 for 0").Args(0).Rets(0),
//		)
//	}
package tt

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Case is a test case. It is created by Args or It and can be further
// augmented by calling its methods.
type Case struct {
	name         string
	args         []any
	retsMatchers [][]any
}

// It returns a new named Case. The name is shown in error messages.
func It(name string) *Case { return &Case{name: name} }

// Args returns a new unnamed Case with the given arguments.
func Args(args ...any) *Case { return &Case{args: args} }

// Args sets the arguments of the case and returns the receiver.
func (c *Case) Args(args ...any) *Case {
	c.args = args
	return c
}

// Rets adds a set of expected return values and returns the receiver. The
// expected values may implement Matcher, in which case its Match method is
// called with the actual return value. Otherwise, cmp.Equal is used.
func (c *Case) Rets(matchers ...any) *Case {
	c.retsMatchers = append(c.retsMatchers, matchers)
	return c
}

// FnDescriptor describes a function to test. It is created by Fn.
type FnDescriptor struct {
	name    string
	body    any
	argsFmt string
	retsFmt string
}

// Fn makes a new FnDescriptor with the given name and body. It is only needed
// when the name derived from the function body is unhelpful, or when custom
// formatting is needed.
func Fn(name string, body any) *FnDescriptor {
	return &FnDescriptor{name: name, body: body}
}

// ArgsFmt sets the format string for arguments in error messages, and returns
// the receiver.
func (fn *FnDescriptor) ArgsFmt(s string) *FnDescriptor {
	fn.argsFmt = s
	return fn
}

// RetsFmt sets the format string for return values in error messages, and
// returns the receiver.
func (fn *FnDescriptor) RetsFmt(s string) *FnDescriptor {
	fn.retsFmt = s
	return fn
}

// T is the interface for accessing testing.T.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test tests a function against test cases. The function may be a plain
// function value or a *FnDescriptor.
func Test(t T, fn any, tests ...*Case) {
	t.Helper()
	var desc *FnDescriptor
	switch fn := fn.(type) {
	case *FnDescriptor:
		desc = fn
	default:
		desc = &FnDescriptor{name: funcName(fn), body: fn}
	}
	for _, test := range tests {
		rets := call(desc.body, test.args)
		for _, retsMatcher := range test.retsMatchers {
			if match(retsMatcher, rets) {
				continue
			}
			var args string
			if desc.argsFmt == "" {
				args = sprintCommaDelimited(test.args...)
			} else {
				args = fmt.Sprintf(desc.argsFmt, test.args...)
			}
			var diff string
			if desc.retsFmt == "" {
				diff = cmp.Diff(retsMatcher, rets, cmpopt)
			} else {
				diff = "-" + fmt.Sprintf(desc.retsFmt, retsMatcher...) +
					"\n+" + fmt.Sprintf(desc.retsFmt, rets...)
			}
			if test.name == "" {
				t.Errorf("%s(%s) returns (-want +got):\n%s", desc.name, args, diff)
			} else {
				t.Errorf("%s %s: %s(%s) returns (-want +got):\n%s",
					desc.name, test.name, desc.name, args, diff)
			}
		}
	}
}

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether a return value is considered a match. The argument
	// is of type RetValue so that it cannot be implemented accidentally.
	Match(RetValue) bool
}

// RetValue is an empty interface used in the Matcher interface.
type RetValue any

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

// Comparing unexported fields is fine in tests; all of them are part of the
// observed value.
var cmpopt = cmp.Exporter(func(reflect.Type) bool { return true })

func match(matchers, actual []any) bool {
	if len(matchers) != len(actual) {
		return false
	}
	for i, matcher := range matchers {
		if m, ok := matcher.(Matcher); ok {
			if !m.Match(actual[i]) {
				return false
			}
		} else if !cmp.Equal(matcher, actual[i], cmpopt) {
			return false
		}
	}
	return true
}

func funcName(fn any) string {
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if i := strings.LastIndexByte(name, '.'); i != -1 {
		name = name[i+1:]
	}
	return name
}

func sprintCommaDelimited(args ...any) string {
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, arg)
	}
	return b.String()
}

func call(fn any, args []any) []any {
	argsReflect := make([]reflect.Value, len(args))
	fnType := reflect.TypeOf(fn)
	for i, arg := range args {
		if arg == nil {
			// reflect.ValueOf(nil) returns a zero Value; use a typed nil
			// matching the parameter instead.
			var paramType reflect.Type
			if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
				paramType = fnType.In(fnType.NumIn() - 1).Elem()
			} else {
				paramType = fnType.In(i)
			}
			argsReflect[i] = reflect.Zero(paramType)
		} else {
			argsReflect[i] = reflect.ValueOf(arg)
		}
	}
	retsReflect := reflect.ValueOf(fn).Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, retReflect := range retsReflect {
		rets[i] = retReflect.Interface()
	}
	return rets
}
