package main

import (
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/gpx2sosi/internal/config"
)

func TestOptions_Parse(t *testing.T) {
	var opts Options
	parser := flags.NewParser(&opts, flags.None)

	rest, err := parser.ParseArgs([]string{"-o", "out", "-p", "4", "--timeout", "2s", "data/hello.gpx"})
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "data/hello.gpx", opts.Args.Input)
	assert.Equal(t, "info", opts.Logger.Level)

	cfg := config.Default()
	opts.apply(cfg)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, 4, cfg.Transform.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.Transform.Timeout)
	assert.Equal(t, "https://ws.geonorge.no/transApi/", cfg.Transform.URL)
}

func TestOptions_InputRequired(t *testing.T) {
	var opts Options
	_, err := flags.NewParser(&opts, flags.None).ParseArgs(nil)
	assert.Error(t, err)
}
