package state

type Point struct{ X, Y float32 }

type Size struct{ Width, Height float32 }

// Path is a single stroke as it is stored on the sketch surface.
type Path struct {
	ID     int     `json:"id"`
	Color  string  `json:"color"`
	Width  float32 `json:"width"`
	Points []Point `json:"points"`
}

// PathData is the payload exchanged with the surface through AddPath and
// OnStrokeEnd. Drawer is the user id that produced the stroke.
type PathData struct {
	Drawer string `json:"drawer"`
	Size   Size   `json:"size"`
	Path   Path   `json:"path"`
}

// Swatch is one selectable predefined colour.
type Swatch struct {
	Color string `json:"color" toml:"color"`
}

// DefaultSwatches mirrors the stock palette offered by the toolbar.
func DefaultSwatches() []Swatch {
	return []Swatch{
		{Color: "#000000"},
		{Color: "#FF0000"},
		{Color: "#00FFFF"},
		{Color: "#0000FF"},
		{Color: "#0000A0"},
		{Color: "#ADD8E6"},
		{Color: "#800080"},
		{Color: "#FFFF00"},
		{Color: "#00FF00"},
		{Color: "#FF00FF"},
		{Color: "#FFFFFF"},
		{Color: "#C0C0C0"},
		{Color: "#808080"},
		{Color: "#FFA500"},
		{Color: "#A52A2A"},
		{Color: "#800000"},
		{Color: "#008000"},
		{Color: "#808000"},
	}
}

// DefaultAlphaRamp is the alpha cycle used when tapping the active swatch.
func DefaultAlphaRamp() []string {
	return []string{"33", "77", "AA", "FF"}
}
