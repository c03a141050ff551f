// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Transform Transform `yaml:"transform"`
	Output    Output    `yaml:"output"`
	Header    Header    `yaml:"header"`
	Object    Object    `yaml:"object"`
}

// Transform configures the remote coordinate transformation service.
type Transform struct {
	URL         string        `yaml:"url"`
	From        int           `yaml:"from"` // source system code, 84 = WGS84 geographic
	To          int           `yaml:"to"`   // target system code, also written as KOORDSYS
	Concurrency int           `yaml:"concurrency,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"` // 0 disables the per request timeout
}

// Output configures where the SOSI file goes.
type Output struct {
	Dir       string `yaml:"dir"`
	Extension string `yaml:"extension,omitempty"`
	GeoJSON   string `yaml:"geojson,omitempty"` // optional export of the source points
}

// Header holds the static .HODE values.
type Header struct {
	Charset  string `yaml:"charset,omitempty"`
	Producer string `yaml:"producer"`
	Version  string `yaml:"version,omitempty"`
	Level    int    `yaml:"level,omitempty"`
}

// Object describes the single geometry set written to the document.
type Object struct {
	Type    string `yaml:"type,omitempty"`
	ID      int    `yaml:"id,omitempty"`
	ObjType string `yaml:"objtype"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Transform: Transform{
			URL:         "https://ws.geonorge.no/transApi/",
			From:        84,
			To:          22,
			Concurrency: 16,
			Timeout:     30 * time.Second,
		},
		Output: Output{
			Dir:       "sosi",
			Extension: ".sos",
		},
		Header: Header{
			Charset:  "UTF-8",
			Producer: "NTE Elektro AS",
			Version:  "4.0",
			Level:    2,
		},
		Object: Object{
			Type:    "KURVE",
			ID:      1,
			ObjType: "TeleFibertrase",
		},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Keys missing from the file keep their default values. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the settings can produce a document.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Transform.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("transform.url must be an absolute URL, got %q", c.Transform.URL))
	}
	if c.Transform.From <= 0 || c.Transform.To <= 0 {
		errs = append(errs, fmt.Errorf("transform.from and transform.to must be positive, got %d and %d", c.Transform.From, c.Transform.To))
	}
	if c.Transform.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("transform.concurrency must be > 0, got %d", c.Transform.Concurrency))
	}
	if c.Transform.Timeout < 0 {
		errs = append(errs, fmt.Errorf("transform.timeout must not be negative, got %s", c.Transform.Timeout))
	}
	if c.Output.Dir == "" {
		errs = append(errs, errors.New("output.dir is required"))
	}
	if c.Object.Type == "" || c.Object.ObjType == "" {
		errs = append(errs, errors.New("object.type and object.objtype are required"))
	}

	return errors.Join(errs...)
}
