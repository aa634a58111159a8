package transcoder

import (
	"context"
	"os/exec"
	"regexp"

	"lumenflow/pkg/models"
)

// ProbedEncoders are the encoders the two stages can emit.
var ProbedEncoders = []string{CodecH264, CodecVP9, CodecAV1}

// ProbedFilters are the filters the key stage depends on.
var ProbedFilters = []string{"chromakey"}

// ProbeCapabilities asks the engine which of the encoders and filters we use
// it was built with. A listing that fails to run reports everything missing.
func (e *Engine) ProbeCapabilities(ctx context.Context) models.EngineCapabilities {
	caps := models.EngineCapabilities{
		EnginePath: e.Path,
		Encoders:   map[string]bool{},
		Filters:    map[string]bool{},
	}

	encoders, _ := e.listing(ctx, "-encoders")
	for _, name := range ProbedEncoders {
		caps.Encoders[name] = hasEntry(encoders, name)
	}

	filters, _ := e.listing(ctx, "-filters")
	for _, name := range ProbedFilters {
		caps.Filters[name] = hasEntry(filters, name)
	}
	return caps
}

func (e *Engine) listing(ctx context.Context, flag string) (string, error) {
	cmd := exec.CommandContext(ctx, e.Path, "-hide_banner", flag)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// hasEntry matches a name as a whole word in an ffmpeg listing, so "libx264"
// does not match "libx264rgb".
func hasEntry(listing, name string) bool {
	re := regexp.MustCompile(`(?m)\s` + regexp.QuoteMeta(name) + `\s`)
	return re.MatchString(listing)
}
