package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"lumenflow/internal/client"
	"lumenflow/internal/config"
	"lumenflow/internal/transcoder"
	"lumenflow/pkg/models"
)

var (
	// ErrInputMissing means the input path does not name a regular file.
	ErrInputMissing = errors.New("input file not found")
	// ErrOutputBusy means another run holds the lock on the output path.
	ErrOutputBusy = errors.New("output is being written by another run")
	// ErrStageFailed wraps an engine run that did not succeed.
	ErrStageFailed = errors.New("stage failed")
)

const notifyTimeout = 30 * time.Second

// Reporter receives a report after every executed stage.
type Reporter interface {
	Report(ctx context.Context, report models.StageReport) error
}

// Options are the per-invocation inputs besides the input path.
type Options struct {
	Output string    // explicit output path, used verbatim
	DryRun bool      // build and print the command without running it
	Stdout io.Writer // dry-run destination, defaults to os.Stdout
}

// Runner executes stages with one loaded configuration.
type Runner struct {
	cfg      *config.Config
	log      *slog.Logger
	reporter Reporter
}

// New creates a Runner. A notifier is attached when notify_url is set.
func New(cfg *config.Config, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	r := &Runner{cfg: cfg, log: log}
	if cfg.NotifyURL != "" {
		r.reporter = client.NewNotifier(cfg.NotifyURL)
	}
	return r
}

// Run executes one stage for one input. The returned error is nil only when
// the output was produced (or, for a dry run, the command was printed).
func (r *Runner) Run(ctx context.Context, stage models.Stage, input string, opts Options) (models.StageResult, error) {
	runID := uuid.NewString()
	log := r.log.With("run_id", runID, "stage", string(stage))

	// 1. The input must exist before anything is built.
	if info, err := os.Stat(input); err != nil || !info.Mode().IsRegular() {
		log.Error("input file not found", "input", input)
		return failed(fmt.Sprintf("input file not found: %s", input)), fmt.Errorf("%w: %s", ErrInputMissing, input)
	}

	// 2. Resolve the output and build the command.
	output, err := transcoder.ResolveOutput(stage, input, r.cfg, opts.Output)
	if err != nil {
		return failed(err.Error()), err
	}
	req := models.StageRequest{
		Stage:      stage,
		InputPath:  input,
		OutputPath: output,
		Settings:   r.cfg.Settings(),
	}
	cmd, err := transcoder.Build(req)
	if err != nil {
		log.Error("cannot build engine command", "error", err)
		return failed(err.Error()), err
	}

	if opts.DryRun {
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		fmt.Fprintln(w, cmd.String(r.cfg.EnginePath))
		return models.StageResult{Succeeded: true}, nil
	}

	log.Info("starting stage", "input", input, "output", output)
	result, err := r.execute(ctx, log, req, runID)
	r.notify(ctx, log, req, runID, result)
	return result, err
}

func (r *Runner) execute(ctx context.Context, log *slog.Logger, req models.StageRequest, runID string) (models.StageResult, error) {
	engine, err := transcoder.NewEngine(r.cfg.EnginePath, r.cfg.Timeout())
	if err != nil {
		log.Error("engine not found, install ffmpeg or set engine_path", "engine", r.cfg.EnginePath)
		return failed(transcoder.DiagEngineNotFound), err
	}

	// 3. Prepare the output directory and claim the target.
	if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0o755); err != nil {
		return failed(err.Error()), fmt.Errorf("create output dir: %w", err)
	}
	unlock, err := lockOutput(req.OutputPath)
	if err != nil {
		log.Error("output locked", "output", req.OutputPath, "error", err)
		return failed(err.Error()), err
	}
	defer unlock()

	// 4. Run the engine against a temporary file next to the output.
	partial := partialPath(req.OutputPath, runID)
	execReq := req
	execReq.OutputPath = partial
	cmd, err := transcoder.Build(execReq)
	if err != nil {
		return failed(err.Error()), err
	}
	log.Info("running engine", "command", cmd.String(engine.Path))

	result := engine.Execute(ctx, cmd)
	if !result.Succeeded {
		removeIfExists(partial)
		log.Error("engine failed", "exit_code", result.ExitCode, "diagnostic", result.Diagnostic)
		if result.Diagnostic == transcoder.DiagEngineNotFound {
			return result, fmt.Errorf("%w: %s", transcoder.ErrEngineNotFound, engine.Path)
		}
		return result, fmt.Errorf("%w: %s", ErrStageFailed, result.Diagnostic)
	}

	// 5. Move the finished file into place.
	if err := os.Rename(partial, req.OutputPath); err != nil {
		removeIfExists(partial)
		res := failed(fmt.Sprintf("move output into place: %v", err))
		log.Error("cannot finalize output", "error", err)
		return res, fmt.Errorf("%w: %s", ErrStageFailed, res.Diagnostic)
	}

	attrs := []any{"output", req.OutputPath, "elapsed", result.Duration.Round(time.Millisecond)}
	if info, err := os.Stat(req.OutputPath); err == nil {
		attrs = append(attrs, "size", humanize.Bytes(uint64(info.Size())))
	}
	log.Info("stage complete", attrs...)
	return result, nil
}

// notify posts the report when a reporter is configured. Delivery problems
// are logged and never change the stage outcome.
func (r *Runner) notify(ctx context.Context, log *slog.Logger, req models.StageRequest, runID string, result models.StageResult) {
	if r.reporter == nil {
		return
	}
	report := models.StageReport{
		RunID:      runID,
		Stage:      req.Stage,
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
		Status:     models.StatusCompleted,
		ElapsedMS:  result.Duration.Milliseconds(),
		FinishedAt: time.Now().UTC(),
	}
	if result.Succeeded {
		if info, err := os.Stat(req.OutputPath); err == nil {
			report.OutputBytes = info.Size()
		}
	} else {
		report.Status = models.StatusFailed
		report.ErrorMsg = result.Diagnostic
	}

	// The report still goes out when the run itself was interrupted.
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := r.reporter.Report(nctx, report); err != nil {
		log.Warn("stage report not delivered", "error", err)
	}
}

func failed(diagnostic string) models.StageResult {
	return models.StageResult{Diagnostic: diagnostic, ExitCode: -1}
}

// lockOutput takes an exclusive lock on "<output>.lock" without waiting.
func lockOutput(output string) (func(), error) {
	lockPath := output + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutputBusy, output)
	}
	return func() {
		_ = os.Remove(lockPath)
		_ = lock.Unlock()
	}, nil
}

// partialPath keeps the output extension so the engine still picks the right
// container: keyed/clip_alpha.mp4 -> keyed/clip_alpha.partial-1a2b3c4d.mp4.
func partialPath(output, runID string) string {
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	id := strings.ReplaceAll(runID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return base + ".partial-" + id + ext
}

func removeIfExists(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("cannot remove partial output", "path", path, "error", err)
	}
}
