package main

import (
	"github.com/spf13/cobra"
	"lumenflow/internal/pipeline"
	"lumenflow/pkg/models"
)

func newKeyCommand(ctx *commandContext) *cobra.Command {
	return newStageCommand(ctx, models.StageKey, stageHelp{
		use:    "key <input>",
		short:  "Remove the background colour and write an alpha MP4",
		output: "Output file path (default: <keyed_folder>/<input_name>_alpha.mp4)",
	})
}

func newTranscodeCommand(ctx *commandContext) *cobra.Command {
	return newStageCommand(ctx, models.StageTranscode, stageHelp{
		use:    "transcode <input>",
		short:  "Convert an alpha MP4 into the delivery codec (WebM by default)",
		output: "Output file path (default: <output_folder>/<input_name>.<container_ext>)",
	})
}

type stageHelp struct {
	use    string
	short  string
	output string
}

func newStageCommand(ctx *commandContext, stage models.Stage, help stageHelp) *cobra.Command {
	var output string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   help.use,
		Short: help.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runner := pipeline.New(cfg, ctx.logger)
			_, err = runner.Run(cmd.Context(), stage, args[0], pipeline.Options{
				Output: output,
				DryRun: dryRun,
				Stdout: cmd.OutOrStdout(),
			})
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", help.output)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the engine command without running it")
	return cmd
}
