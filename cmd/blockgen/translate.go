package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/helixml/blockgen/application/service"
	"github.com/helixml/blockgen/internal/config"
	"github.com/spf13/cobra"
)

func translateCmd() *cobra.Command {
	var (
		envFile  string
		output   string
		baudRate int
	)

	cmd := &cobra.Command{
		Use:   "translate FILE",
		Short: "Translate a block program into an Arduino sketch",
		Long: `Translate a block program into an Arduino sketch.

FILE is a YAML or JSON program document; use "-" to read from stdin.
The sketch is written to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("baud") {
				cfg = cfg.Apply(config.WithSerialBaudRate(baudRate))
			}
			return runTranslate(cmd.Context(), cfg, args[0], output, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the sketch to this file instead of stdout")
	cmd.Flags().IntVar(&baudRate, "baud", 0, "Open the serial port at this baud rate in setup(); 0 disables it")

	return cmd
}

func runTranslate(ctx context.Context, cfg config.AppConfig, path, output string, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	client, logger, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	var sketch service.Sketch
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		sketch, err = client.TranslateDocument(ctx, data)
		if err != nil {
			return err
		}
	} else {
		sketch, err = client.TranslateFile(ctx, path)
		if err != nil {
			return err
		}
	}

	if output == "" {
		_, err = io.WriteString(stdout, sketch.Source())
		return err
	}

	if err := os.WriteFile(output, []byte(sketch.Source()), 0o644); err != nil {
		return fmt.Errorf("write sketch: %w", err)
	}
	logger.Info("sketch written", "path", output, "blocks", sketch.BlockCount())
	return nil
}
