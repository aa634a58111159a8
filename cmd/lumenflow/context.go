package main

import (
	"fmt"
	"log/slog"

	"lumenflow/internal/config"
	"lumenflow/internal/logging"
)

// commandContext loads configuration and the logger once per process.
type commandContext struct {
	configFlag *string

	cfg    *config.Config
	logger *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.LoadConfig(*c.configFlag)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}
	if cfg.Source != "" {
		logger.Debug("config loaded", "path", cfg.Source)
	}
	slog.SetDefault(logger)

	c.cfg = cfg
	c.logger = logger
	return cfg, nil
}
