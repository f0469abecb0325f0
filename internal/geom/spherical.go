package geom

import "math"

// Spherical holds camera-style spherical coordinates around the origin.
//
// Phi is the polar angle measured from +Y, Theta the azimuth measured from +Z
// toward +X:
//
//	x = r·sin(phi)·sin(theta)
//	y = r·cos(phi)
//	z = r·sin(phi)·cos(theta)
type Spherical struct {
	Radius float64
	Theta  float64
	Phi    float64
}

// ToVec3 converts to cartesian coordinates.
func (s Spherical) ToVec3() Vec3 {
	sinPhi := math.Sin(s.Phi)
	return Vec3{
		X: s.Radius * sinPhi * math.Sin(s.Theta),
		Y: s.Radius * math.Cos(s.Phi),
		Z: s.Radius * sinPhi * math.Cos(s.Theta),
	}
}

// SphericalFromVec3 converts a cartesian point to spherical coordinates.
// The origin maps to the zero value.
func SphericalFromVec3(v Vec3) Spherical {
	r := v.Norm()
	if r == 0 {
		return Spherical{}
	}
	y := v.Y / r
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	return Spherical{
		Radius: r,
		Theta:  math.Atan2(v.X, v.Z),
		Phi:    math.Acos(y),
	}
}
