package sosi

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"text/template"

	"github.com/paulmach/orb"
	"github.com/woozymasta/gpx2sosi/internal/apperr"
	"github.com/woozymasta/gpx2sosi/internal/geo"
)

// AreaMargin pads the ..OMRÅDE bounds outward, in whole units.
const AreaMargin = 10

// maxExact is the largest magnitude orb's float64 points hold exactly.
const maxExact = 1 << 53

// Terminator closes every document.
const Terminator = ".SLUTT"

// Indentation in the templates below is for reading only and is removed by
// Document.Bytes.
var (
	headerTmpl = template.Must(template.New("header").Parse(`.HODE 0:
  ..TEGNSETT {{.Charset}}
  ..TRANSPAR
  ...KOORDSYS {{.CoordSys}}
  ...ORIGO-NØ 0 0
  ...ENHET {{.Unit}}
  ..PRODUSENT "{{.Producer}}"
  ..SOSI-VERSJON {{.Version}}
  ..SOSI-NIVÅ {{.Level}}
  ..OMRÅDE
  ...MIN-NØ {{index .Min 0}} {{index .Min 1}}
  ...MAX-NØ {{index .Max 0}} {{index .Max 1}}
`))

	setTmpl = template.Must(template.New("set").Parse(`.{{.Type}} {{.ID}}:
  ..OBJTYPE {{.ObjType}}
  ..NØH
{{range .Points}}{{.North}} {{.East}} {{.Height}}
{{end}}`))

	indentRegex = regexp.MustCompile(`  +`)
)

// HeaderOptions are the static values of the .HODE block.
type HeaderOptions struct {
	Charset  string
	CoordSys int
	Producer string
	Version  string
	Level    int
}

// ObjectOptions name the single geometry set.
type ObjectOptions struct {
	Type    string // e.g. KURVE
	ID      int
	ObjType string // ..OBJTYPE label
}

// BoundingArea holds the encoded extremes of all projected points.
type BoundingArea struct {
	MaxEast, MinEast   string
	MaxNorth, MinNorth string
}

// Document is an assembled SOSI file before whitespace removal.
type Document struct {
	Header string
	Sets   string
}

// Area scans the points for per-axis extremes.
func Area(points []geo.ProjectedPoint) (BoundingArea, error) {
	if len(points) == 0 {
		return BoundingArea{}, apperr.EmptyInput("area", nil)
	}

	mp := make(orb.MultiPoint, 0, len(points))
	for _, p := range points {
		east, err := strconv.ParseInt(p.East, 10, 64)
		if err != nil {
			return BoundingArea{}, fmt.Errorf("point %s: east %q: %w", p.ID, p.East, err)
		}
		north, err := strconv.ParseInt(p.North, 10, 64)
		if err != nil {
			return BoundingArea{}, fmt.Errorf("point %s: north %q: %w", p.ID, p.North, err)
		}
		if outOfRange(east) || outOfRange(north) {
			return BoundingArea{}, fmt.Errorf("point %s: %s %s exceeds %d", p.ID, p.North, p.East, int64(maxExact))
		}
		mp = append(mp, orb.Point{float64(east), float64(north)})
	}

	b := mp.Bound()
	return BoundingArea{
		MinEast:  formatInt(b.Min.X()),
		MaxEast:  formatInt(b.Max.X()),
		MinNorth: formatInt(b.Min.Y()),
		MaxNorth: formatInt(b.Max.Y()),
	}, nil
}

// Corners returns the padded MIN-NØ and MAX-NØ pairs in whole units.
func (a BoundingArea) Corners() (minNE, maxNE [2]int64, err error) {
	vals := make([]int64, 4)
	for i, s := range []string{a.MinNorth, a.MinEast, a.MaxNorth, a.MaxEast} {
		if vals[i], err = DecodeFixedPoint(s, Accuracy); err != nil {
			return minNE, maxNE, err
		}
	}

	minNE = [2]int64{vals[0] - AreaMargin, vals[1] - AreaMargin}
	maxNE = [2]int64{vals[2] + AreaMargin, vals[3] + AreaMargin}
	return minNE, maxNE, nil
}

// Assemble renders the header, area and a single coordinate set. Coordinate
// lines follow the order of points.
func Assemble(points []geo.ProjectedPoint, h HeaderOptions, o ObjectOptions) (*Document, error) {
	area, err := Area(points)
	if err != nil {
		return nil, err
	}
	minNE, maxNE, err := area.Corners()
	if err != nil {
		return nil, err
	}

	var header bytes.Buffer
	err = headerTmpl.Execute(&header, struct {
		HeaderOptions
		Unit     string
		Min, Max [2]int64
	}{h, Unit(Accuracy), minNE, maxNE})
	if err != nil {
		return nil, fmt.Errorf("render header: %w", err)
	}

	var sets bytes.Buffer
	err = setTmpl.Execute(&sets, struct {
		ObjectOptions
		Points []geo.ProjectedPoint
	}{o, points})
	if err != nil {
		return nil, fmt.Errorf("render set: %w", err)
	}

	return &Document{Header: header.String(), Sets: sets.String()}, nil
}

// Bytes joins header, sets and terminator and strips every run of two or
// more spaces.
func (d *Document) Bytes() []byte {
	return []byte(indentRegex.ReplaceAllString(d.Header+d.Sets+Terminator, ""))
}

func outOfRange(v int64) bool {
	return v > maxExact || v < -maxExact
}

func formatInt(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}
