package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/furnex/furnex"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Extractor furnex.ProductExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the extraction web server"`
	Extract ExtractCmd `cmd:"" help:"Extract product names from a single URL"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr        string        `default:":8000" env:"FURNEX_ADDR" help:"HTTP bind address"`
	Render      bool          `help:"Render pages in a headless browser before extraction"`
	Readability bool          `help:"Use the readability text extractor instead of trafilatura"`
	Timeout     time.Duration `default:"15s" help:"Page fetch timeout"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL         string        `arg:"" help:"Page URL to extract products from"`
	Render      bool          `help:"Render the page in a headless browser before extraction"`
	Readability bool          `help:"Use the readability text extractor instead of trafilatura"`
	JSON        bool          `help:"Print the result as JSON"`
	Timeout     time.Duration `default:"15s" help:"Page fetch timeout"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
}
