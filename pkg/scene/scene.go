// Package scene defines the parameter model that the UI layer feeds
// into surface generation and contouring, together with its validation.
// The core algorithms never see these parameters; by the time they run,
// a Request has been reduced to a mesh, a scalar field, an iso-value
// list, and a LUT.
package scene

// DisplayMode selects which contour products the frontend wants.
type DisplayMode string

const (
	DisplayFilled DisplayMode = "filled"
	DisplayLines  DisplayMode = "lines"
	DisplayBoth   DisplayMode = "both"
)

// MinContours is the smallest contour count the UI offers.
const MinContours = 3

// Params are the domain-specific surface parameters driven by the
// slider panel. The core treats the resulting scalar field as opaque;
// only the surface sources interpret these.
type Params struct {
	R          float64 `json:"r"`          // hole radius for the plate surface
	Theta      float64 `json:"theta"`      // probe angle, degrees
	Pressure   float64 `json:"pressure"`   // far-field load
	Resolution int     `json:"resolution"` // grid subdivisions
}

// Request carries one full contouring configuration from the frontend.
// Min/Max of zero together mean "derive from the field range". An empty
// IsoValues list means "space NumContours values evenly".
type Request struct {
	Surface     string      `json:"surface"`
	DisplayMode DisplayMode `json:"displayMode"`
	NumContours int         `json:"numContours"`
	ColorTable  string      `json:"colorTable"`
	Bands       int         `json:"bands"`
	Min         float64     `json:"min"`
	Max         float64     `json:"max"`
	IsoValues   []float64   `json:"isoValues"`
	Params      Params      `json:"params"`
	FieldSource string      `json:"fieldSource"` // optional scripted field
}
