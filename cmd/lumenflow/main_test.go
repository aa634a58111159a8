package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"lumenflow/internal/config"
	"lumenflow/internal/pipeline"
)

// setupWorkspace writes a stub engine, an input clip and a config pointing at
// both, and returns the config path.
func setupWorkspace(t *testing.T, engineBody string) (dir, cfgPath string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs need a POSIX shell")
	}
	dir = t.TempDir()
	engine := filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\n" + `for a in "$@"; do out="$a"; done` + "\n" + engineBody + "\n"
	if err := os.WriteFile(engine, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("video"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	body, _ := json.Marshal(map[string]any{
		"engine_path":   engine,
		"keyed_folder":  filepath.Join(dir, "keyed"),
		"output_folder": filepath.Join(dir, "webm"),
		"log_level":     "error",
	})
	cfgPath = filepath.Join(dir, "pipeline_config.json")
	if err := os.WriteFile(cfgPath, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir, cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestKeyCommand(t *testing.T) {
	dir, cfgPath := setupWorkspace(t, `printf alpha > "$out"`)
	if _, err := execute(t, "key", filepath.Join(dir, "clip.mp4"), "-c", cfgPath); err != nil {
		t.Fatalf("key: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "keyed", "clip_alpha.mp4")); err != nil {
		t.Fatalf("keyed output missing: %v", err)
	}
}

func TestTranscodeCommandExplicitOutput(t *testing.T) {
	dir, cfgPath := setupWorkspace(t, `printf webm > "$out"`)
	target := filepath.Join(dir, "delivery", "final.webm")
	if _, err := execute(t, "transcode", filepath.Join(dir, "clip.mp4"), "--config", cfgPath, "-o", target); err != nil {
		t.Fatalf("transcode: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("explicit output missing: %v", err)
	}
}

func TestStageCommandFailures(t *testing.T) {
	dir, cfgPath := setupWorkspace(t, `echo "invalid filter" >&2; exit 1`)

	_, err := execute(t, "key", filepath.Join(dir, "clip.mp4"), "-c", cfgPath)
	if !errors.Is(err, pipeline.ErrStageFailed) || !strings.Contains(err.Error(), "invalid filter") {
		t.Errorf("engine failure: %v", err)
	}

	_, err = execute(t, "key", filepath.Join(dir, "missing.mp4"), "-c", cfgPath)
	if !errors.Is(err, pipeline.ErrInputMissing) {
		t.Errorf("missing input: %v", err)
	}

	if _, err := execute(t, "key", "-c", cfgPath); err == nil {
		t.Error("expected an error without an input argument")
	}
}

func TestMalformedConfigFails(t *testing.T) {
	dir, _ := setupWorkspace(t, "exit 0")
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "key", filepath.Join(dir, "clip.mp4"), "-c", bad)
	if !errors.Is(err, config.ErrMalformedConfig) {
		t.Fatalf("error = %v, want ErrMalformedConfig", err)
	}
}

func TestDryRunPrintsCommand(t *testing.T) {
	dir, cfgPath := setupWorkspace(t, "exit 1")
	out, err := execute(t, "key", filepath.Join(dir, "clip.mp4"), "-c", cfgPath, "--dry-run")
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !strings.Contains(out, "chromakey=0x00FF00:0.1:0.05") {
		t.Errorf("dry run output = %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	_, cfgPath := setupWorkspace(t, "exit 0")
	out, err := execute(t, "config", "-c", cfgPath)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("config output is not json: %v\n%s", err, out)
	}
	if got["video_codec"] != "libvpx-vp9" || got["quality_tier"] != "good" {
		t.Errorf("config = %v", got)
	}
}

func TestCheckCommand(t *testing.T) {
	_, cfgPath := setupWorkspace(t, `case "$2" in
-encoders) printf ' V....D libx264   H.264\n V....D libvpx-vp9   VP9\n V....D libaom-av1   AV1\n' ;;
-filters) printf ' ... chromakey   V->V   key\n' ;;
esac`)
	out, err := execute(t, "check", "-c", cfgPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "libvpx-vp9") || strings.Contains(out, "missing") {
		t.Errorf("check output = %q", out)
	}
}
