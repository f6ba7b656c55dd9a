package godot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gderrors "github.com/gdtdd/gdtdd/errors"
)

func TestBuildArgs(t *testing.T) {
	opts := RunOptions{
		Executable:  "/opt/godot/godot",
		ProjectRoot: "/home/dev/my game",
		TestPath:    "res://test_suites/test_tile_database.gd",
	}

	require.Equal(t, []string{
		"--path", "/home/dev/my game",
		"--headless",
		"--run-tests",
		"res://test_suites/test_tile_database.gd",
	}, BuildArgs(opts))

	require.Equal(t,
		"/opt/godot/godot --path '/home/dev/my game' --headless --run-tests res://test_suites/test_tile_database.gd",
		BuildCommand(opts))
}

func fakeGodot(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "godot")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755))
	return path
}

func TestRunCapturesCombinedOutput(t *testing.T) {
	exe := fakeGodot(t, `echo "Tests: 2"; echo "Errors: 1" >&2; exit 1`)
	var stream bytes.Buffer

	result, err := Run(context.Background(), zerolog.Nop(), RunOptions{
		Executable:  exe,
		ProjectRoot: t.TempDir(),
		TestPath:    "res://test_suites/test_a.gd",
	}, time.Minute, &stream)

	require.NoError(t, err)
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Output, "Tests: 2")
	assert.Contains(t, result.Output, "Errors: 1")
	assert.Equal(t, result.Output, stream.String())
}

func TestRunTimeout(t *testing.T) {
	exe := fakeGodot(t, `echo "Tests: 1"; exec sleep 10`)

	result, err := Run(context.Background(), zerolog.Nop(), RunOptions{
		Executable:  exe,
		ProjectRoot: t.TempDir(),
		TestPath:    "res://test_suites/test_a.gd",
	}, 200*time.Millisecond, nil)

	require.Error(t, err)
	require.True(t, gderrors.Is(err, gderrors.KindTimeout))
	require.NotNil(t, result)
	require.Equal(t, -1, result.ExitCode)
}

func TestRunLaunchFailure(t *testing.T) {
	_, err := Run(context.Background(), zerolog.Nop(), RunOptions{
		Executable:  filepath.Join(t.TempDir(), "missing"),
		ProjectRoot: t.TempDir(),
	}, time.Minute, nil)

	require.Error(t, err)
	require.False(t, gderrors.Is(err, gderrors.KindTimeout))
}

func TestLocatorResolve(t *testing.T) {
	dir := t.TempDir()
	configured := filepath.Join(dir, "godot-configured")
	fromEnv := filepath.Join(dir, "godot-env")
	candidate := filepath.Join(dir, "godot-candidate")
	for _, p := range []string{configured, fromEnv, candidate} {
		require.NoError(t, os.WriteFile(p, nil, 0755))
	}
	missing := filepath.Join(dir, "missing")

	noEnv := func(string) string { return "" }
	noPath := func(string) (string, error) { return "", errors.New("not found") }

	tests := []struct {
		name    string
		locator Locator
		want    string
		wantErr bool
	}{
		{
			name:    "configured executable wins",
			locator: Locator{Executable: configured, Getenv: func(string) string { return fromEnv }},
			want:    configured,
		},
		{
			name:    "configured executable missing",
			locator: Locator{Executable: missing},
			wantErr: true,
		},
		{
			name:    "environment",
			locator: Locator{Candidates: []string{candidate}, Getenv: func(string) string { return fromEnv }},
			want:    fromEnv,
		},
		{
			name:    "candidate",
			locator: Locator{Candidates: []string{missing, candidate}, Getenv: noEnv, LookPath: noPath},
			want:    candidate,
		},
		{
			name: "path lookup",
			locator: Locator{Getenv: noEnv, LookPath: func(name string) (string, error) {
				if name == "godot4" {
					return "/usr/bin/godot4", nil
				}
				return "", errors.New("not found")
			}},
			want: "/usr/bin/godot4",
		},
		{
			name:    "nothing found",
			locator: Locator{Getenv: noEnv, LookPath: noPath},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.locator.Resolve()
			if tt.wantErr {
				require.True(t, gderrors.Is(err, gderrors.KindNotFound))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
