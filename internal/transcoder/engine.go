package transcoder

import (
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Encoder and pixel format names the builders emit.
const (
	CodecVP9  = "libvpx-vp9"
	CodecAV1  = "libaom-av1"
	CodecH264 = "libx264"

	// The key stage always writes H.264 with an alpha-preserving pixel format.
	keyEncoder     = CodecH264
	keyPixelFormat = "yuva420p"
)

// ErrEngineNotFound means the ffmpeg binary could not be located or executed.
var ErrEngineNotFound = errors.New("engine not found")

// Engine is the external transcoding binary both stages delegate to.
type Engine struct {
	Path    string
	Timeout time.Duration // zero means no limit
}

// NewEngine locates the binary (a bare name is looked up on PATH) and returns
// an Engine bound to the resolved path.
func NewEngine(bin string, timeout time.Duration) (*Engine, error) {
	if bin == "" {
		bin = "ffmpeg"
	}

	// 1. Locate the binary on the system PATH (or verify the explicit path).
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEngineNotFound, bin, err)
	}

	// 2. Create the Engine instance.
	return &Engine{
		Path:    path,
		Timeout: timeout,
	}, nil
}
