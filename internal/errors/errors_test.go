package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type codeError struct{ code int }

func (e *codeError) Error() string { return "code error" }

func TestWrapNil(t *testing.T) {
	require.NoError(t, Wrap(nil))
	require.NoError(t, Wrapf(nil, "ignored"))
	require.NoError(t, New(nil))
}

func TestWrapfKeepsCause(t *testing.T) {
	err := Wrapf(io.EOF, "read reply")

	require.EqualError(t, err, "read reply: EOF")
	require.True(t, Is(err, io.EOF))
	require.True(t, stderrors.Is(err, io.EOF))
}

func TestAsFindsWrappedType(t *testing.T) {
	err := Wrapf(Wrap(&codeError{code: 7}), "outer")

	var target *codeError
	require.True(t, As(err, &target))
	require.Equal(t, 7, target.code)
}

func TestStack(t *testing.T) {
	require.Empty(t, Stack(io.EOF))
	require.Contains(t, Stack(Errorf("boom %d", 1)), "boom 1")
}
