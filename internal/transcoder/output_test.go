package transcoder

import (
	"errors"
	"path/filepath"
	"testing"

	"lumenflow/internal/config"
	"lumenflow/pkg/models"
)

func TestResolveOutput(t *testing.T) {
	cfg := config.Default()
	custom := config.Default()
	custom.OutputFolder = "/srv/delivery"
	custom.ContainerExt = ".mkv"

	tests := []struct {
		name     string
		stage    models.Stage
		input    string
		cfg      *config.Config
		explicit string
		want     string
	}{
		{"key default", models.StageKey, "clip.mp4", &cfg, "", "keyed/clip_alpha.mp4"},
		{"key nested input", models.StageKey, "/footage/day1/take.2.mov", &cfg, "", "keyed/take.2_alpha.mp4"},
		{"transcode default", models.StageTranscode, "keyed/clip_alpha.mp4", &cfg, "", "webm/clip_alpha.webm"},
		{"transcode custom", models.StageTranscode, "clip.mp4", &custom, "", "/srv/delivery/clip.mkv"},
		{"explicit verbatim", models.StageKey, "clip.mp4", &cfg, "./somewhere//x.mp4", "./somewhere//x.mp4"},
		{"no extension", models.StageKey, "clip", &cfg, "", "keyed/clip_alpha.mp4"},
		{"dot file", models.StageKey, ".clip", &cfg, "", "keyed/.clip_alpha.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveOutput(tt.stage, tt.input, tt.cfg, tt.explicit)
			if err != nil {
				t.Fatalf("ResolveOutput: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveOutput = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveOutputMatchesDotSlashFolder(t *testing.T) {
	cfg := config.Default()
	got, err := ResolveOutput(models.StageKey, "clip.mp4", &cfg, "")
	if err != nil {
		t.Fatalf("ResolveOutput: %v", err)
	}
	if got != filepath.Clean("./keyed/clip_alpha.mp4") {
		t.Errorf("got %q", got)
	}
}

func TestResolveOutputUnknownStage(t *testing.T) {
	cfg := config.Default()
	if _, err := ResolveOutput("mux", "clip.mp4", &cfg, ""); !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("error = %v, want ErrUnknownStage", err)
	}
}
