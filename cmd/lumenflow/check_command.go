package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"lumenflow/internal/monitor"
	"lumenflow/internal/transcoder"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the engine and report host capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			engine, err := transcoder.NewEngine(cfg.EnginePath, cfg.Timeout())
			if err != nil {
				fmt.Fprintf(out, "engine:   MISSING (%s)\n", cfg.EnginePath)
				return err
			}
			fmt.Fprintf(out, "engine:   %s\n", engine.Path)

			mon := monitor.NewSystemMonitor(engine)
			caps := mon.GetCapabilities(cmd.Context())
			for _, name := range transcoder.ProbedEncoders {
				fmt.Fprintf(out, "encoder:  %-12s %s\n", name, availability(caps.Encoders[name]))
			}
			for _, name := range transcoder.ProbedFilters {
				fmt.Fprintf(out, "filter:   %-12s %s\n", name, availability(caps.Filters[name]))
			}
			if missing := mon.Missing(cmd.Context()); len(missing) > 0 {
				ctx.logger.Warn("engine build lacks features some configurations need", "missing", missing)
			}

			specs, err := monitor.GetStaticSpecs(cmd.Context())
			if err != nil {
				ctx.logger.Warn("host stats unavailable", "error", err)
			}
			fmt.Fprintf(out, "cpu:      %s (%d threads)\n", specs.CPUModel, specs.TotalThreads)
			if specs.RAMFreeBytes > 0 {
				fmt.Fprintf(out, "memory:   %s available\n", humanize.Bytes(specs.RAMFreeBytes))
			}
			fmt.Fprintf(out, "threads:  %d configured\n", cfg.ThreadCount)
			return nil
		},
	}
}

func availability(ok bool) string {
	if ok {
		return "ok"
	}
	return "missing"
}
