// Package result carries the outcome of a step that may fail with a
// human-readable error text instead of a Go error.
package result

import "fmt"

type Result[T any] struct {
	OK        bool
	Value     T
	ErrorText string
}

func Ok[T any](v T) Result[T] {
	return Result[T]{OK: true, Value: v}
}

func Fail[T any](text string) Result[T] {
	return Result[T]{ErrorText: text}
}

func Failf[T any](format string, args ...any) Result[T] {
	return Result[T]{ErrorText: fmt.Sprintf(format, args...)}
}

// FailWith keeps a partial value alongside the failure, such as captured output.
func FailWith[T any](v T, text string) Result[T] {
	return Result[T]{Value: v, ErrorText: text}
}
