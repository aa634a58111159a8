package models

import "time"

// --- Stages ---

// Stage names one of the two pipeline stages.
type Stage string

const (
	StageKey       Stage = "key"       // Background removal into an alpha MP4.
	StageTranscode Stage = "transcode" // Alpha intermediate into the delivery codec.
)

// --- Stage Requests & Results ---

// StageRequest is everything a stage needs to build its engine command.
// It is created once per invocation and never modified afterwards.
type StageRequest struct {
	Stage      Stage
	InputPath  string
	OutputPath string
	Settings   EncodeSettings
}

// EncodeSettings is the subset of the configuration the command builders read.
type EncodeSettings struct {
	BackgroundColor string  `json:"background_color"` // e.g. "#00FF00"
	Tolerance       float64 `json:"tolerance"`        // 0.0 - 1.0, not clamped
	VideoCodec      string  `json:"video_codec"`      // e.g. "libvpx-vp9", "libaom-av1"
	PixelFormat     string  `json:"pixel_format"`     // e.g. "yuva420p"
	QualityTier     string  `json:"quality_tier"`     // best, good, fast
	ThreadCount     int     `json:"thread_count"`
}

// StageResult is the terminal value of one engine invocation.
type StageResult struct {
	Succeeded  bool          `json:"succeeded"`
	Diagnostic string        `json:"diagnostic,omitempty"`
	ExitCode   int           `json:"exit_code"`
	Duration   time.Duration `json:"duration_ns"`
}

// --- Notifications ---

// StageReport is posted to the configured notify_url after a stage finishes.
// Used in [POST] <notify_url>
type StageReport struct {
	RunID       string    `json:"run_id"`
	Stage       Stage     `json:"stage"`
	InputPath   string    `json:"input_path"`
	OutputPath  string    `json:"output_path"`
	Status      string    `json:"status"` // "COMPLETED", "FAILED"
	ErrorMsg    string    `json:"error_message,omitempty"`
	OutputBytes int64     `json:"output_bytes,omitempty"`
	ElapsedMS   int64     `json:"elapsed_ms"`
	FinishedAt  time.Time `json:"finished_at"`
}

const (
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// --- Diagnostics ---

// StaticHardware describes the host, reported by the check command.
type StaticHardware struct {
	CPUModel     string `json:"cpu_model"`
	TotalThreads int    `json:"total_threads"`
	RAMFreeBytes uint64 `json:"ram_free_bytes"`
}

// EngineCapabilities lists which alpha-relevant encoders and filters the
// engine build exposes.
type EngineCapabilities struct {
	EnginePath string          `json:"engine_path"`
	Encoders   map[string]bool `json:"encoders"`
	Filters    map[string]bool `json:"filters"`
}
