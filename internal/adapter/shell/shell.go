// Package shell is the boundary to the desktop host: opening folders in the
// file manager and raising notifications. Calls never fail past this
// boundary; outcomes are reported in Result.
package shell

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Result is the outcome of a shell request.
type Result struct {
	OK    bool   `json:"ok"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

// Local talks to the machine the process runs on.
type Local struct {
	baseDir string
	opener  []string
	log     *slog.Logger
}

// NewLocal creates a shell rooted at baseDir. opener is the command used to
// reveal a folder (for example "xdg-open"); empty disables launching.
func NewLocal(log *slog.Logger, baseDir, opener string) *Local {
	return &Local{
		baseDir: baseDir,
		opener:  strings.Fields(opener),
		log:     log.With("adapter", "shell"),
	}
}

// OpenFolder ensures baseDir/name exists and asks the opener to show it.
func (l *Local) OpenFolder(ctx context.Context, name string) Result {
	clean := filepath.Clean(name)
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return Result{Error: fmt.Sprintf("invalid folder name %q", name)}
	}

	path := filepath.Join(l.baseDir, clean)
	if err := os.MkdirAll(path, 0o755); err != nil {
		l.log.WarnContext(ctx, "create folder failed", slog.String("path", path), slog.String("error", err.Error()))
		return Result{Path: path, Error: err.Error()}
	}

	if len(l.opener) > 0 {
		args := append(append([]string{}, l.opener[1:]...), path)
		cmd := exec.CommandContext(ctx, l.opener[0], args...)
		if err := cmd.Start(); err != nil {
			l.log.WarnContext(ctx, "open folder failed", slog.String("path", path), slog.String("error", err.Error()))
			return Result{Path: path, Error: err.Error()}
		}
		go func() { _ = cmd.Wait() }()
	}

	l.log.InfoContext(ctx, "folder opened", slog.String("path", path))
	return Result{OK: true, Path: path}
}

// Notify delivers a desktop notification. The local shell records it in the
// structured log, which the desktop host tails.
func (l *Local) Notify(ctx context.Context, title, body string) Result {
	l.log.InfoContext(ctx, "notification",
		slog.String("title", title),
		slog.String("body", body),
	)
	return Result{OK: true}
}

// Unavailable is used when no desktop host is attached.
type Unavailable struct{}

const unavailableMsg = "desktop shell unavailable"

// OpenFolder always reports the shell as unavailable.
func (Unavailable) OpenFolder(context.Context, string) Result {
	return Result{Error: unavailableMsg}
}

// Notify always reports the shell as unavailable.
func (Unavailable) Notify(context.Context, string, string) Result {
	return Result{Error: unavailableMsg}
}
