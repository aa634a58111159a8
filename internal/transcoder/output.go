package transcoder

import (
	"fmt"
	"path/filepath"
	"strings"

	"lumenflow/internal/config"
	"lumenflow/pkg/models"
)

// keySuffix is appended to the input stem for key stage outputs.
const keySuffix = "_alpha.mp4"

// ResolveOutput picks the output file for a stage. An explicit path wins
// verbatim; otherwise the stem of the input is placed in the stage's folder:
//
//	key:       <keyed_folder>/<stem>_alpha.mp4
//	transcode: <output_folder>/<stem>.<container_ext>
//
// It performs no I/O.
func ResolveOutput(stage models.Stage, inputPath string, cfg *config.Config, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	stem := inputStem(inputPath)
	switch stage {
	case models.StageKey:
		return filepath.Join(cfg.KeyedFolder, stem+keySuffix), nil
	case models.StageTranscode:
		ext := strings.TrimPrefix(cfg.ContainerExt, ".")
		return filepath.Join(cfg.OutputFolder, stem+"."+ext), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
}

// inputStem is the base name without its final extension. Dot files keep
// their full name.
func inputStem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}
