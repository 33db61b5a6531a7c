package main

import (
	"fmt"

	"github.com/helixml/blockgen"
	"github.com/helixml/blockgen/internal/config"
	"github.com/helixml/blockgen/internal/log"
)

// newClient configures logging from cfg and returns a blockgen Client using it.
func newClient(cfg config.AppConfig) (*blockgen.Client, *log.Logger, error) {
	logger := log.Configure(cfg)

	client, err := blockgen.New(clientOptions(cfg, logger)...)
	if err != nil {
		return nil, nil, fmt.Errorf("create blockgen client: %w", err)
	}
	return client, logger, nil
}

// clientOptions returns the blockgen.Option slice derived from AppConfig.
func clientOptions(cfg config.AppConfig, logger *log.Logger) []blockgen.Option {
	opts := []blockgen.Option{blockgen.WithLogger(logger.Slog())}
	if rate := cfg.SerialBaudRate(); rate != 0 {
		opts = append(opts, blockgen.WithSerialBaudRate(rate))
	}
	return opts
}

// closeClient closes client and logs a failure.
func closeClient(client *blockgen.Client, logger *log.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close blockgen client", "error", err)
	}
}
