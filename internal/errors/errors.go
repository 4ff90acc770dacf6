// Package errors wraps github.com/go-errors/errors so that every error leaving
// a package carries the stack of the place it was first wrapped.
package errors

import (
	"fmt"

	"github.com/go-errors/errors"
)

func New(err any) error {
	if err == nil {
		return nil
	}

	return errors.Wrap(err, 1)
}

func Errorf(format string, a ...any) error {
	return errors.Wrap(fmt.Errorf(format, a...), 1)
}

func Wrap(err any) error {
	if err == nil {
		return nil
	}

	return errors.Wrap(err, 1)
}

func Wrapf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}

	return errors.WrapPrefix(err, fmt.Sprintf(format, a...), 1)
}

// Stack returns the stack recorded when err was first wrapped, or an empty
// string when err never went through this package.
func Stack(err error) string {
	var stackErr *errors.Error
	if !errors.As(err, &stackErr) {
		return ""
	}

	return stackErr.ErrorStack()
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
