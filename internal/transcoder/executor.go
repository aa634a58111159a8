package transcoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"lumenflow/pkg/models"
)

// DiagEngineNotFound is the diagnostic for a binary that could not be started.
const DiagEngineNotFound = "engine not found"

// Execute runs the engine once with cmd and blocks until it exits. Failures
// are reported in the result, never as a panic or error value:
//
//   - exit 0: Succeeded
//   - non-zero exit: Diagnostic holds the captured stderr
//   - binary missing or not executable: Diagnostic is "engine not found"
//   - timeout or cancellation: Diagnostic says so
func (e *Engine) Execute(ctx context.Context, cmd Command) models.StageResult {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	proc := exec.CommandContext(ctx, e.Path, cmd.Args...)
	var stderr bytes.Buffer
	proc.Stderr = &stderr

	start := time.Now()

	// 1. Start the process; a failure here means it never ran.
	if err := proc.Start(); err != nil {
		return models.StageResult{
			Diagnostic: startDiagnostic(err),
			ExitCode:   -1,
		}
	}
	slog.Debug("engine started", "pid", proc.Process.Pid, "engine", e.Path)

	// 2. Wait for it to finish.
	err := proc.Wait()
	result := models.StageResult{Duration: time.Since(start)}
	if err == nil {
		result.Succeeded = true
		return result
	}

	result.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.Diagnostic = "engine timed out"
		if e.Timeout > 0 {
			result.Diagnostic = fmt.Sprintf("engine timed out after %s", e.Timeout)
		}
	case errors.Is(ctx.Err(), context.Canceled):
		result.Diagnostic = "engine interrupted"
	default:
		result.Diagnostic = strings.TrimSpace(stderr.String())
		if result.Diagnostic == "" {
			result.Diagnostic = fmt.Sprintf("engine exited with status %d", result.ExitCode)
		}
	}
	return result
}

func startDiagnostic(err error) string {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return DiagEngineNotFound
	}
	return fmt.Sprintf("engine failed to start: %v", err)
}
