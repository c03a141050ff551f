// Package pipeline runs the GPX to SOSI conversion end to end.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/gpx2sosi/internal/apperr"
	"github.com/woozymasta/gpx2sosi/internal/config"
	"github.com/woozymasta/gpx2sosi/internal/geo"
	"github.com/woozymasta/gpx2sosi/internal/gpx"
	"github.com/woozymasta/gpx2sosi/internal/sosi"
	"github.com/woozymasta/gpx2sosi/internal/transform"

	"github.com/rs/zerolog/log"
)

// Run converts inputPath and returns the path of the written SOSI file.
// Every stage must succeed before anything is written. If httpClient is nil
// one is built from the transform timeout.
func Run(ctx context.Context, cfg *config.Config, httpClient *http.Client, inputPath string) (string, error) {
	start := time.Now()

	log.Info().Str("path", inputPath).Msg("Reading GPX file")
	points, err := gpx.ReadFile(inputPath)
	if err != nil {
		return "", err
	}
	log.Debug().Int("points", len(points)).Msg("Points extracted")

	if httpClient == nil {
		httpClient = transform.NewHTTPClient(cfg.Transform.Timeout)
	}
	client := transform.NewClient(httpClient, cfg.Transform)

	log.Info().
		Str("service", cfg.Transform.URL).
		Int("points", len(points)).
		Msg("Projecting coordinates")
	projected, err := client.Convert(ctx, points)
	if err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}

	log.Info().Msg("Generating SOSI document")
	doc, err := sosi.Assemble(projected, headerOptions(cfg), objectOptions(cfg))
	if err != nil {
		return "", fmt.Errorf("assemble: %w", err)
	}

	// The GeoJSON export is staged next to its target and only moved into
	// place once the SOSI file is on disk.
	var staged string
	if cfg.Output.GeoJSON != "" {
		staged = cfg.Output.GeoJSON + ".tmp"
		if err := geo.SaveGeoJSON(staged, geo.FeatureCollection(points)); err != nil {
			_ = os.Remove(staged)
			return "", apperr.IO("save geojson", err)
		}
	}

	log.Info().Str("dir", cfg.Output.Dir).Msg("Writing to disk")
	out, err := sosi.Write(doc, inputPath, cfg.Output.Dir, cfg.Output.Extension)
	if err != nil {
		if staged != "" {
			_ = os.Remove(staged)
		}
		return "", err
	}

	if staged != "" {
		if err := os.Rename(staged, cfg.Output.GeoJSON); err != nil {
			_ = os.Remove(staged)
			_ = os.Remove(out)
			return "", apperr.IO("save geojson", err)
		}
		log.Info().Str("path", cfg.Output.GeoJSON).Msg("Source points exported as GeoJSON")
	}

	log.Info().
		Str("output", out).
		Int("points", len(projected)).
		Dur("duration", time.Since(start)).
		Msg("Done")

	return out, nil
}

func headerOptions(cfg *config.Config) sosi.HeaderOptions {
	return sosi.HeaderOptions{
		Charset:  cfg.Header.Charset,
		CoordSys: cfg.Transform.To,
		Producer: cfg.Header.Producer,
		Version:  cfg.Header.Version,
		Level:    cfg.Header.Level,
	}
}

func objectOptions(cfg *config.Config) sosi.ObjectOptions {
	return sosi.ObjectOptions{
		Type:    cfg.Object.Type,
		ID:      cfg.Object.ID,
		ObjType: cfg.Object.ObjType,
	}
}
