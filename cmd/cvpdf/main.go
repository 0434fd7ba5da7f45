package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/gompdf/cvpdf/internal/config"
	"github.com/gompdf/cvpdf/pkg/api"
)

const appName = "cvpdf"

// env is the state shared by all commands of one run
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	closer  func() error
	started time.Time
}

type envKey struct{}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{log: zap.NewNop()}
}

// initializeAppContext loads the configuration and prepares logging after
// the command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := envFromContext(ctx)

	var err error
	configFile := cmd.String("config")
	if e.cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if e.log, e.closer, err = e.cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	e.log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	if configFile == "" {
		e.log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	e := envFromContext(ctx)
	if e.log != nil {
		e.log.Debug("Program ended", zap.Duration("elapsed", time.Since(e.started)), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	if e.closer != nil {
		if er := e.closer(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close logs: %w", er))
		}
	}
	return
}

// errWasHandled is set when the error has already been logged
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	e := envFromContext(ctx)
	if e.log != nil {
		e.log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

// converterOptions maps the configuration onto converter options
func converterOptions(cfg *config.Config, log *zap.Logger) []api.Option {
	width, height := cfg.Document.PageDimensions()
	m := cfg.Document.Margin
	opts := []api.Option{
		api.WithLogger(log),
		api.WithPageSize(width, height),
		api.WithMargins(m.Top, m.Right, m.Bottom, m.Left),
		api.WithHyphenation(cfg.Layout.Hyphenation),
		api.WithMinWordLength(cfg.Layout.MinWordLength),
		api.WithLanguage(cfg.Layout.Language),
		api.WithRendering(cfg.Render.Backgrounds, cfg.Render.Borders, cfg.Render.Bookmarks),
		api.WithDebugDrawBoxes(cfg.Render.DebugBoxes),
	}
	if cfg.Layout.HyphenationPatterns != "" {
		opts = append(opts, api.WithHyphenationDictionary(cfg.Layout.HyphenationPatterns, cfg.Layout.HyphenationExceptions))
	}
	return opts
}

func newConverter(e *env, source string) *api.Converter {
	opts := api.DefaultOptions()
	for _, opt := range converterOptions(e.cfg, e.log) {
		opt(&opts)
	}
	if !isURL(source) {
		opts.ResourcePaths = append(opts.ResourcePaths, filepath.Dir(source))
	}
	return api.NewWithOptions(opts)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// outputPath derives the destination from the source unless given
func outputPath(src, dst string) string {
	if dst != "" {
		return dst
	}
	if isURL(src) {
		return appName + ".pdf"
	}
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".pdf"
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := envFromContext(ctx)
	log := e.log.Named("convert")

	src := cmd.Args().Get(0)
	if src == "" {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	dst := outputPath(src, cmd.String("output"))

	start := time.Now()
	conv := newConverter(e, src)
	var err error
	if isURL(src) {
		err = conv.ConvertURL(ctx, src, dst)
	} else {
		err = conv.ConvertFile(src, dst)
	}
	if err != nil {
		return fmt.Errorf("unable to convert '%s': %w", src, err)
	}
	log.Info("Conversion completed", zap.String("source", src), zap.String("destination", dst), zap.Duration("elapsed", time.Since(start)))
	return nil
}

func runLayout(ctx context.Context, cmd *cli.Command) (err error) {
	e := envFromContext(ctx)

	src := cmd.Args().Get(0)
	if src == "" {
		return errors.New("no input source has been specified")
	}
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read '%s': %w", src, err)
	}

	structure, err := newConverter(e, src).Layout(string(content))
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(structure)
	if err != nil {
		return fmt.Errorf("unable to marshal layout: %w", err)
	}

	out := os.Stdout
	if fname := cmd.Args().Get(1); fname != "" {
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer func() {
			err = multierr.Append(err, out.Close())
		}()
	}
	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write layout: %w", err)
	}
	return nil
}

func runDumpConfig(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)

	var (
		data []byte
		err  error
	)
	if cmd.Bool("default") {
		data = config.Prepare()
	} else if data, err = config.Dump(e.cfg); err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	if _, err = os.Stdout.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.WithValue(context.Background(), envKey{}, &env{started: time.Now()}), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "lays out an HTML CV styled with utility classes and renders it to PDF",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:         "convert",
				Usage:        "Converts an HTML CV file or URL to PDF",
				OnUsageError: usageErrorHandler,
				Action:       runConvert,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write PDF to `FILE`, by default next to the source"},
				},
				ArgsUsage: "SOURCE",
			},
			{
				Name:         "layout",
				Usage:        "Dumps computed page layout (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       runLayout,
				ArgsUsage:    "SOURCE [DESTINATION]",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       runDumpConfig,
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
