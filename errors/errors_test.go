package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "not found",
			err:  NotFound("test file", "res://test_suites/test_a.gd"),
			want: "test file not found: res://test_suites/test_a.gd",
		},
		{
			name: "malformed wraps cause",
			err:  Malformed("coverage report", fmt.Errorf("unexpected EOF")),
			want: "malformed coverage report: unexpected EOF",
		},
		{
			name: "timeout",
			err:  Timeout("godot", 2*time.Minute),
			want: "godot timed out (2m0s)",
		},
		{
			name: "usage",
			err:  Usage("expected %d argument", 1),
			want: "expected 1 argument",
		},
		{
			name: "silent failure",
			err:  Failure(""),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(Failure("")))
	assert.Equal(t, ExitFailure, GetExitCode(NotFound("godot executable", "PATH")))
	assert.Equal(t, ExitUsage, GetExitCode(Usage("missing argument")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("plain")))

	wrapped := fmt.Errorf("run: %w", Usage("bad flag"))
	assert.Equal(t, ExitUsage, GetExitCode(wrapped))
}

func TestIs(t *testing.T) {
	cause := fmt.Errorf("decode: %w", Malformed("coverage report", fmt.Errorf("bad")))
	require.True(t, Is(cause, KindMalformedInput))
	require.False(t, Is(cause, KindNotFound))
	require.False(t, Is(nil, KindTimeout))
}
