// Package gpx reads waypoints and route points from GPX documents.
package gpx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/gpx2sosi/internal/apperr"
	"github.com/woozymasta/gpx2sosi/internal/geo"
)

// Internal structures for XML parsing. Tags match on local names, so both
// GPX 1.0 and 1.1 namespaces are accepted.
type gpxFile struct {
	XMLName xml.Name
	Wpt     []point `xml:"wpt"`
	Rte     []route `xml:"rte"`
}

type route struct {
	Name  string  `xml:"name"`
	Rtept []point `xml:"rtept"`
}

type point struct {
	Lat  string   `xml:"lat,attr"`
	Lon  string   `xml:"lon,attr"`
	Name *string  `xml:"name"`
	Ele  *float64 `xml:"ele"`
}

// ReadFile loads a GPX file and extracts its points.
func ReadFile(path string) ([]geo.RawPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.IO("open "+path, err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse extracts all wpt elements followed by the rtept elements of every rte,
// in document order. Names default to the index in that combined list and
// elevation defaults to 0.
func Parse(r io.Reader) ([]geo.RawPoint, error) {
	var doc gpxFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.Format("parse", errors.New("document is empty"))
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, apperr.IO("read", err)
		}
		return nil, apperr.Format("parse", err)
	}

	if doc.XMLName.Local != "gpx" {
		return nil, apperr.Format("parse", fmt.Errorf("root element is <%s>, want <gpx>", doc.XMLName.Local))
	}

	raw := make([]point, 0, len(doc.Wpt))
	raw = append(raw, doc.Wpt...)
	for _, rte := range doc.Rte {
		raw = append(raw, rte.Rtept...)
	}

	if len(raw) == 0 {
		return nil, apperr.EmptyInput("parse", nil)
	}

	points := make([]geo.RawPoint, 0, len(raw))
	for i, p := range raw {
		rp, err := p.toRaw(i)
		if err != nil {
			return nil, apperr.Format(fmt.Sprintf("point %d", i), err)
		}
		points = append(points, rp)
	}

	return points, nil
}

func (p point) toRaw(index int) (geo.RawPoint, error) {
	lat, err := parseCoord("lat", p.Lat)
	if err != nil {
		return geo.RawPoint{}, err
	}
	lon, err := parseCoord("lon", p.Lon)
	if err != nil {
		return geo.RawPoint{}, err
	}

	rp := geo.RawPoint{
		ID:  strconv.Itoa(index),
		Lat: lat,
		Lon: lon,
	}
	if p.Name != nil {
		if name := strings.TrimSpace(*p.Name); name != "" {
			rp.ID = name
		}
	}
	if p.Ele != nil {
		rp.Ele = *p.Ele
	}

	return rp, nil
}

func parseCoord(attr, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("missing %s attribute", attr)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", attr, value)
	}
	return v, nil
}
