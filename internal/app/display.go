package app

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Display shows a rendered chart file to the user.
type Display interface {
	Show(ctx context.Context, path string) error
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(ctx context.Context, path string) error

// Show implements Display.
func (f DisplayFunc) Show(ctx context.Context, path string) error { return f(ctx, path) }

// SystemViewer opens files with the operating system's default viewer. It
// returns once the viewer has been started.
type SystemViewer struct{}

// Show implements Display.
func (SystemViewer) Show(ctx context.Context, path string) error {
	name, args := viewerCommand(runtime.GOOS, path)
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // fixed viewer binaries, path is an argument
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func viewerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}
