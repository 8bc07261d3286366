package solar

// Surface is a plane the engine projects irradiance onto. Azimuth is the
// direction the outward normal faces, degrees clockwise from north; Tilt is the
// angle from horizontal, 0 for a roof and 90 for a wall.
type Surface struct {
	Name    string  `json:"name"`
	Azimuth float64 `json:"azimuth"`
	Tilt    float64 `json:"tilt"`
}

// NumSurfaces is the size of the catalog.
const NumSurfaces = 9

// Surfaces is the fixed catalog: eight vertical façades from south, turning
// east, then the horizontal roof. Report columns follow this order.
var Surfaces = [NumSurfaces]Surface{
	{Name: "S", Azimuth: 180, Tilt: 90},
	{Name: "SE", Azimuth: 135, Tilt: 90},
	{Name: "E", Azimuth: 90, Tilt: 90},
	{Name: "NE", Azimuth: 45, Tilt: 90},
	{Name: "N", Azimuth: 0, Tilt: 90},
	{Name: "NW", Azimuth: 315, Tilt: 90},
	{Name: "W", Azimuth: 270, Tilt: 90},
	{Name: "SW", Azimuth: 225, Tilt: 90},
	{Name: "Roof", Azimuth: 0, Tilt: 0},
}
