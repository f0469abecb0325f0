package geom

import "math"

// Ray is a half-line starting at Origin in the unit direction Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// IntersectSphere returns the nearest non-negative ray parameter at which the
// ray meets the sphere. A ray starting inside the sphere hits its far side.
func IntersectSphere(r Ray, center Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Quad is a camera-facing rectangle described by its center, unit normal and
// in-plane unit axes.
type Quad struct {
	Center Vec3
	Normal Vec3
	Right  Vec3
	Up     Vec3
	HalfW  float64
	HalfH  float64
}

// IntersectQuad returns the ray parameter at which the ray crosses the quad.
// Rays parallel to the quad plane never hit.
func IntersectQuad(r Ray, q Quad) (float64, bool) {
	denom := q.Normal.Dot(r.Dir)
	if math.Abs(denom) < 1e-9 {
		return 0, false
	}
	t := q.Center.Sub(r.Origin).Dot(q.Normal) / denom
	if t < 0 {
		return 0, false
	}
	local := r.At(t).Sub(q.Center)
	if math.Abs(local.Dot(q.Right)) > q.HalfW || math.Abs(local.Dot(q.Up)) > q.HalfH {
		return 0, false
	}
	return t, true
}

// Basis is an orthonormal camera frame.
type Basis struct {
	Forward Vec3
	Right   Vec3
	Up      Vec3
}

// LookAt builds the frame for an eye looking at target. When the view
// direction is parallel to worldUp the frame falls back to +Z as reference
// so the basis stays orthonormal.
func LookAt(eye, target, worldUp Vec3) Basis {
	fwd := target.Sub(eye).Normalized()
	right := fwd.Cross(worldUp)
	if right.Norm() < 1e-9 {
		right = fwd.Cross(Vec3{Z: 1})
	}
	right = right.Normalized()
	up := right.Cross(fwd).Normalized()
	return Basis{Forward: fwd, Right: right, Up: up}
}
