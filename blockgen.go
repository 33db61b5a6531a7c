// Package blockgen translates visual block programs into Arduino sketches.
//
// Programs are trees of placed blocks. Robot blocks (the InsectBot Hexa
// family) emit fixed code fragments and register the headers and global
// objects they rely on; structural blocks (if, delay, number, call) glue them
// together.
//
// Basic usage:
//
//	client, err := blockgen.New(blockgen.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	sketch, err := client.TranslateFile(ctx, "avoid_obstacles.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(sketch.Source())
package blockgen

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/helixml/blockgen/application/service"
	"github.com/helixml/blockgen/domain/program"
	"github.com/helixml/blockgen/infrastructure/loader"
)

// Client is the main entry point for the blockgen library.
// It is safe for concurrent use.
type Client struct {
	Sketches *service.Sketches

	logger *slog.Logger
	closed atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.serialBaudRate < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBaudRate, cfg.serialBaudRate)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	var setup []string
	if cfg.serialBaudRate > 0 {
		setup = append(setup, fmt.Sprintf("Serial.begin(%d);", cfg.serialBaudRate))
	}

	return &Client{
		Sketches: service.NewSketches(logger, setup),
		logger:   logger,
	}, nil
}

// Translate turns a program into a sketch.
func (c *Client) Translate(ctx context.Context, prog program.Program) (service.Sketch, error) {
	if c.closed.Load() {
		return service.Sketch{}, service.ErrClientClosed
	}
	return c.Sketches.Translate(ctx, prog)
}

// TranslateDocument decodes a YAML or JSON program and translates it.
func (c *Client) TranslateDocument(ctx context.Context, data []byte) (service.Sketch, error) {
	prog, err := loader.Decode(data)
	if err != nil {
		return service.Sketch{}, err
	}
	return c.Translate(ctx, prog)
}

// TranslateFile loads a program file and translates it.
func (c *Client) TranslateFile(ctx context.Context, path string) (service.Sketch, error) {
	prog, err := loader.Load(path)
	if err != nil {
		return service.Sketch{}, err
	}
	return c.Translate(ctx, prog)
}

// Blocks returns the blocks a program may use.
func (c *Client) Blocks() []service.BlockInfo {
	return c.Sketches.Blocks()
}

// Close marks the client closed. Later translations fail with
// service.ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return service.ErrClientClosed
	}
	c.logger.Debug("blockgen client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}
