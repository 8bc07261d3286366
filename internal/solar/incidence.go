package solar

import "math"

// DefaultGroundReflectance is the albedo used for the ground-reflected
// component unless overridden.
const DefaultGroundReflectance = 0.2

// Horizontal holds the measured irradiance components of one hour, Wh/m2.
type Horizontal struct {
	Global  float64
	Direct  float64 // beam on a plane normal to the sun
	Diffuse float64
}

// CosIncidence is the cosine of the angle between the sun vector and the
// surface's outward normal. Negative values mean the sun is behind the plane.
func CosIncidence(p Position, s Surface) float64 {
	zen, tilt := degToRad(p.Zenith), degToRad(s.Tilt)
	return math.Cos(zen)*math.Cos(tilt) +
		math.Sin(zen)*math.Sin(tilt)*math.Cos(degToRad(p.Azimuth-s.Azimuth))
}

// Incident returns the irradiance on surface s under an isotropic sky: beam
// projected by the incidence angle, sky diffuse weighted by the view factor to
// the sky, and ground reflection weighted by the view factor to the ground.
// Hours with the sun at or below the horizon yield zero.
func Incident(p Position, s Surface, in Horizontal, groundReflectance float64) float64 {
	if !p.Up() {
		return 0
	}
	cosTilt := math.Cos(degToRad(s.Tilt))
	beam := in.Direct * math.Max(0, CosIncidence(p, s))
	sky := in.Diffuse * (1 + cosTilt) / 2
	ground := in.Global * groundReflectance * (1 - cosTilt) / 2
	return beam + sky + ground
}
