package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/furnex/furnex"
	"github.com/furnex/furnex/extract"
	"github.com/furnex/furnex/goquery"
	furnexhttp "github.com/furnex/furnex/http"
	"github.com/furnex/furnex/onnx"
	"github.com/furnex/furnex/prose"
	"github.com/furnex/furnex/readability"
	"github.com/furnex/furnex/rod"
	furnexslog "github.com/furnex/furnex/slog"
	"github.com/furnex/furnex/trafilatura"
)

// version is reported by the health endpoint.
const version = "0.2.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Extractor overrides the wired pipeline. Set for end-to-end tests.
	Extractor furnex.ProductExtractor

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources acquired during Run.
func (m *Main) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("furnex"),
		kong.Description("Extract furniture product names from shop pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'furnex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	verbose := cli.Serve.Verbose || cli.Extract.Verbose
	deps.Logger = newLogger(stderr, verbose)

	if m.Extractor != nil {
		deps.Extractor = m.Extractor
	} else {
		opts := pipelineOptions{
			render:      cli.Serve.Render,
			readability: cli.Serve.Readability,
			timeout:     cli.Serve.Timeout,
		}
		if cmd == "extract" {
			opts = pipelineOptions{
				render:      cli.Extract.Render,
				readability: cli.Extract.Readability,
				timeout:     cli.Extract.Timeout,
			}
		}

		extractor, err := m.buildPipeline(deps.Logger, opts)
		if err != nil {
			if opts.render {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			}
			return err
		}
		deps.Extractor = extractor
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// pipelineOptions selects the concrete fetcher and text extractor.
type pipelineOptions struct {
	render      bool
	readability bool
	timeout     time.Duration
}

// buildPipeline wires the extraction pipeline from its concrete parts.
// Fetchers and recognizers acquired here are released by Close.
func (m *Main) buildPipeline(logger *slog.Logger, opts pipelineOptions) (*extract.Pipeline, error) {
	var fetcher furnex.Fetcher
	if opts.render {
		f, err := rod.NewFetcher()
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = furnexhttp.NewFetcher(furnexhttp.WithTimeout(opts.timeout))
	}
	m.closers = append(m.closers, fetcher)

	var text furnex.TextExtractor = trafilatura.NewExtractor()
	if opts.readability {
		text = readability.NewExtractor()
	}

	recognizer := m.buildRecognizer(logger)

	return &extract.Pipeline{
		Fetcher:    furnexslog.NewLoggingFetcher(fetcher, logger),
		Text:       text,
		Structured: goquery.NewExtractor(),
		Entities:   recognizer,
		Logger:     logger,
	}, nil
}

// buildRecognizer picks the entity recognizer. An ONNX model is used
// when FURNEX_NER_MODEL is set; otherwise the pure-Go prose model.
// Recognizer failures degrade the NER signal rather than aborting,
// because keyword and structured-data extraction still work without it.
func (m *Main) buildRecognizer(logger *slog.Logger) furnex.EntityRecognizer {
	var recognizer furnex.EntityRecognizer

	if modelPath := os.Getenv("FURNEX_NER_MODEL"); modelPath != "" {
		r, err := onnx.NewRecognizer(onnx.Config{
			ModelPath:     modelPath,
			TokenizerPath: os.Getenv("FURNEX_NER_TOKENIZER"),
			LibraryPath:   os.Getenv("FURNEX_ORT_LIB"),
		})
		if err != nil {
			logger.Warn("ONNX recognizer unavailable, falling back to prose",
				"model", modelPath,
				"error", err,
			)
		} else {
			recognizer = r
		}
	}

	if recognizer == nil {
		recognizer = prose.NewRecognizer()
	}

	m.closers = append(m.closers, recognizer)
	return furnexslog.NewLoggingRecognizer(recognizer, logger)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
