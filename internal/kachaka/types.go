package kachaka

// Pose is a 2D pose on the map: position in meters and heading in radians.
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// Map is one exported map: the rendered PNG image and its geometry.
// Data travels base64-encoded on the wire.
type Map struct {
	Name       string  `json:"name"`
	Data       []byte  `json:"data"`
	Resolution float64 `json:"resolution"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Origin     Pose    `json:"origin"`
}

// Metadata accompanies every response. Cursor is an opaque signed 64-bit
// versioning token; requests echo the last seen value, zero for a fresh read.
type Metadata struct {
	Cursor int64 `json:"cursor"`
}

type getRequest struct {
	Metadata Metadata `json:"metadata"`
}

type serialNumberResponse struct {
	Metadata     Metadata `json:"metadata"`
	SerialNumber string   `json:"serial_number"`
}

type currentMapIDResponse struct {
	Metadata Metadata `json:"metadata"`
	ID       string   `json:"id"`
}

type robotVersionResponse struct {
	Metadata Metadata `json:"metadata"`
	Version  string   `json:"version"`
}

type pngMapResponse struct {
	Metadata Metadata `json:"metadata"`
	Map      Map      `json:"map"`
}
