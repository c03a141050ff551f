// Package transform reprojects points through a remote coordinate
// transformation service.
package transform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/woozymasta/gpx2sosi/internal/apperr"
	"github.com/woozymasta/gpx2sosi/internal/config"
	"github.com/woozymasta/gpx2sosi/internal/geo"
	"github.com/woozymasta/gpx2sosi/internal/sosi"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Projection is a service answer in target system units.
type Projection struct {
	East  float64
	North float64
}

// Internal structure for JSON parsing
type response struct {
	Ost  *float64 `json:"ost"`
	Nord *float64 `json:"nord"`
}

// Client calls the transformation service.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	from        int
	to          int
	concurrency int
}

// NewHTTPClient builds the HTTP client used for service calls.
// A zero timeout leaves requests unbounded.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
		Timeout: timeout,
	}
}

// NewClient creates a client for the configured service.
func NewClient(httpClient *http.Client, cfg config.Transform) *Client {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     cfg.URL,
		from:        cfg.From,
		to:          cfg.To,
		concurrency: concurrency,
	}
}

// Project converts one geographic coordinate. Transport failures, non-200
// answers and bodies without numeric ost/nord are network errors.
func (c *Client) Project(ctx context.Context, lat, lon float64) (Projection, error) {
	reqURL, err := c.buildURL(lat, lon)
	if err != nil {
		return Projection{}, apperr.Network("build request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Projection{}, apperr.Network("build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Projection{}, apperr.Network("request", err)
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Projection{}, apperr.Network("request", fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Projection{}, apperr.Network("decode response", err)
	}
	if r.Ost == nil || r.Nord == nil {
		return Projection{}, apperr.Network("decode response", errors.New("ost or nord missing"))
	}

	log.Trace().
		Float64("lat", lat).
		Float64("lon", lon).
		Float64("ost", *r.Ost).
		Float64("nord", *r.Nord).
		Msg("Coordinate projected")

	return Projection{East: *r.Ost, North: *r.Nord}, nil
}

// Convert projects every point, at most concurrency calls at a time, and
// returns them encoded in input order. The first failure cancels the calls
// that have not finished yet and is returned once all of them have stopped;
// no partial result is returned.
func (c *Client) Convert(ctx context.Context, points []geo.RawPoint) ([]geo.ProjectedPoint, error) {
	results := make([]geo.ProjectedPoint, len(points))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			proj, err := c.Project(gctx, p.Lat, p.Lon)
			if err != nil {
				return fmt.Errorf("point %s: %w", p.ID, err)
			}

			results[i] = geo.ProjectedPoint{
				ID:     p.ID,
				East:   sosi.EncodeFixedPoint(proj.East, sosi.Accuracy),
				North:  sosi.EncodeFixedPoint(proj.North, sosi.Accuracy),
				Height: sosi.EncodeFixedPoint(p.Ele, sosi.Accuracy),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Int("points", len(results)).
		Int("concurrency", c.concurrency).
		Msg("All coordinates projected")

	return results, nil
}

func (c *Client) buildURL(lat, lon float64) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("ost", formatFloat(lon))
	q.Set("nord", formatFloat(lat))
	q.Set("fra", strconv.Itoa(c.from))
	q.Set("til", strconv.Itoa(c.to))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
