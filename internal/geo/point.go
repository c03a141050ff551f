// Package geo holds the point model shared by the conversion stages and
// a GeoJSON view of the source points.
package geo

// RawPoint is a waypoint or route point as read from the GPX file.
// Lat maps to the northing axis and Lon to the easting axis.
type RawPoint struct {
	ID  string  // <name>, or the position in the combined point list
	Lat float64 // degrees
	Lon float64 // degrees
	Ele float64 // meters, 0 when absent
}

// ProjectedPoint is a point in the target system with fixed-point encoded
// values, ready to be written as "nord ost hoyde".
type ProjectedPoint struct {
	ID     string `json:"navn"`
	East   string `json:"ost"`
	North  string `json:"nord"`
	Height string `json:"hoyde"`
}
