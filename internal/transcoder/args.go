package transcoder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lumenflow/pkg/models"
)

// ErrUnknownStage is returned when a request names neither pipeline stage.
var ErrUnknownStage = errors.New("unknown stage")

// Command is the argument list for one engine invocation, excluding the
// binary itself. It is a pure function of the StageRequest it was built from.
type Command struct {
	Args []string
}

// String renders the command for logs and dry runs, quoting arguments that
// would not survive a shell round trip.
func (c Command) String(engine string) string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quoteArg(engine))
	for _, a := range c.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}

// Build constructs the engine arguments for a stage request.
func Build(req models.StageRequest) (Command, error) {
	switch req.Stage {
	case models.StageKey:
		return buildKeyArgs(req)
	case models.StageTranscode:
		return buildTranscodeArgs(req), nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownStage, req.Stage)
	}
}

// KeyFilter returns the chromakey filter expression for a colour and tolerance.
// similarity is the tolerance verbatim and the edge blend is half of it; neither
// is clamped, the engine decides what is in range.
func KeyFilter(color RGB, tolerance float64) string {
	similarity := tolerance
	blend := tolerance * 0.5
	return fmt.Sprintf("chromakey=0x%s:%s:%s", color.Hex(), formatFloat(similarity), formatFloat(blend))
}

// buildKeyArgs removes the background colour and writes an alpha-capable MP4.
func buildKeyArgs(req models.StageRequest) (Command, error) {
	color, err := ParseHexColor(req.Settings.BackgroundColor)
	if err != nil {
		return Command{}, err
	}

	args := []string{
		"-i", req.InputPath,
		"-vf", KeyFilter(color, req.Settings.Tolerance),
		"-c:v", keyEncoder,
		"-pix_fmt", keyPixelFormat,
		"-c:a", "copy", // Audio passes through untouched
		"-y", // Overwrite output
		req.OutputPath,
	}
	return Command{Args: args}, nil
}

// buildTranscodeArgs re-encodes an alpha intermediate into the delivery codec.
func buildTranscodeArgs(req models.StageRequest) Command {
	s := req.Settings
	args := []string{
		"-i", req.InputPath,
		"-c:v", s.VideoCodec,
		"-pix_fmt", s.PixelFormat,
	}

	switch s.VideoCodec {
	case CodecVP9:
		args = append(args, QualityFlags(s.QualityTier)...)
		args = append(args,
			"-row-mt", "1", // Row based multithreading
			"-threads", strconv.Itoa(s.ThreadCount),
		)
	case CodecAV1:
		args = append(args, av1Flags()...)
	default:
		// Unknown encoders get no tuning flags; the engine validates the name.
	}

	args = append(args,
		"-an", // The delivery format carries no audio
		"-y",
		req.OutputPath,
	)
	return Command{Args: args}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
