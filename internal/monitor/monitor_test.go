package monitor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"lumenflow/internal/transcoder"
)

func stubEngine(t *testing.T, body string) *transcoder.Engine {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs need a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return &transcoder.Engine{Path: path}
}

func TestMissingReportsAbsentEncoders(t *testing.T) {
	e := stubEngine(t, `case "$2" in
-encoders) printf ' V....D libx264   H.264\n V....D libvpx-vp9   VP9\n' ;;
-filters) printf ' ... chromakey   V->V   key\n' ;;
esac`)
	m := NewSystemMonitor(e)
	missing := m.Missing(context.Background())
	if len(missing) != 1 || missing[0] != "encoder libaom-av1" {
		t.Errorf("Missing() = %v", missing)
	}
}

func TestGetCapabilitiesIsCached(t *testing.T) {
	counter := filepath.Join(t.TempDir(), "calls")
	e := stubEngine(t, `echo x >> "`+counter+`"`)
	m := NewSystemMonitor(e)
	m.GetCapabilities(context.Background())
	m.GetCapabilities(context.Background())

	b, err := os.ReadFile(counter)
	if err != nil {
		t.Fatalf("read counter: %v", err)
	}
	// One probe is two engine calls (-encoders and -filters).
	if n := strings.Count(string(b), "x"); n != 2 {
		t.Errorf("engine called %d times, want 2", n)
	}
}

func TestGetStaticSpecs(t *testing.T) {
	specs, err := GetStaticSpecs(context.Background())
	if err != nil {
		t.Skipf("host memory stats unavailable: %v", err)
	}
	if specs.TotalThreads <= 0 {
		t.Errorf("TotalThreads = %d", specs.TotalThreads)
	}
	if specs.CPUModel == "" {
		t.Error("CPUModel is empty")
	}
}
