package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/woozymasta/gpx2sosi/internal/apperr"
	"github.com/woozymasta/gpx2sosi/internal/config"
	"github.com/woozymasta/gpx2sosi/internal/logger"
	"github.com/woozymasta/gpx2sosi/internal/pipeline"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string        `short:"c" long:"config"      env:"CONFIG_FILE"   description:"Path to YAML configuration file (optional)"`
	OutputDir   string        `short:"o" long:"out-dir"     env:"OUTPUT_DIR"    description:"Output directory, must exist (default: sosi)"`
	ServiceURL  string        `short:"u" long:"service-url" env:"SERVICE_URL"   description:"Coordinate transformation endpoint"`
	Concurrency int           `short:"p" long:"concurrency" env:"CONCURRENCY"   description:"Parallel transformation requests (default: 16)"`
	Timeout     time.Duration `short:"t" long:"timeout"     env:"TIMEOUT"       description:"Per request timeout (default: 30s)"`
	GeoJSON     string        `short:"g" long:"geojson"     env:"GEOJSON_OUT"   description:"Also export source points as GeoJSON to this path"`

	Args struct {
		Input string `positional-arg-name:"input.gpx" description:"GPX file to convert" required:"yes"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	opts.apply(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := pipeline.Run(ctx, cfg, nil, opts.Args.Input); err != nil {
		log.Error().
			Err(err).
			Str("kind", apperr.KindOf(err).String()).
			Str("path", opts.Args.Input).
			Msg("Conversion failed")
		stop()
		os.Exit(apperr.ExitCode(err))
	}
}

// apply overrides configuration values with flags that were set.
func (o Options) apply(cfg *config.Config) {
	if o.OutputDir != "" {
		cfg.Output.Dir = o.OutputDir
	}
	if o.ServiceURL != "" {
		cfg.Transform.URL = o.ServiceURL
	}
	if o.Concurrency > 0 {
		cfg.Transform.Concurrency = o.Concurrency
	}
	if o.Timeout > 0 {
		cfg.Transform.Timeout = o.Timeout
	}
	if o.GeoJSON != "" {
		cfg.Output.GeoJSON = o.GeoJSON
	}
}
