package pick

import (
	"math"

	"github.com/litescript/orbitnav/internal/geom"
)

// DefaultFOV is the vertical field of view in degrees.
const DefaultFOV = 60.0

const nearPlane = 0.1

// Viewport is the render surface measured in terminal cells.
type Viewport struct {
	Width      int
	Height     int
	CellAspect float64 // cell height / cell width
}

// Valid reports whether the surface has drawable area.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Aspect returns width / height in square units.
func (v Viewport) Aspect() float64 {
	if !v.Valid() {
		return 1
	}
	ca := v.CellAspect
	if ca <= 0 {
		ca = 1
	}
	return float64(v.Width) / (float64(v.Height) * ca)
}

// NDC converts the center of cell (col, row) to normalized device
// coordinates, x right and y up in [-1, 1].
func (v Viewport) NDC(col, row int) (x, y float64) {
	if !v.Valid() {
		return 0, 0
	}
	x = (float64(col)+0.5)/float64(v.Width)*2 - 1
	y = 1 - (float64(row)+0.5)/float64(v.Height)*2
	return x, y
}

// Cell converts normalized device coordinates back to a cell.
func (v Viewport) Cell(x, y float64) (col, row int) {
	col = int(math.Floor((x + 1) / 2 * float64(v.Width)))
	row = int(math.Floor((1 - y) / 2 * float64(v.Height)))
	return col, row
}

// Projector is a perspective camera aimed along Basis.Forward.
type Projector struct {
	Eye    geom.Vec3
	Basis  geom.Basis
	FOV    float64 // vertical, degrees
	Aspect float64
}

// NewProjector builds a projector for a camera at eye looking at the origin.
func NewProjector(eye geom.Vec3, fov, aspect float64) Projector {
	if fov <= 0 {
		fov = DefaultFOV
	}
	if aspect <= 0 {
		aspect = 1
	}
	return Projector{
		Eye:    eye,
		Basis:  geom.LookAt(eye, geom.Vec3{}, geom.WorldUp),
		FOV:    fov,
		Aspect: aspect,
	}
}

func (p Projector) tanHalf() float64 {
	return math.Tan(p.FOV * math.Pi / 360)
}

// Ray casts from the eye through an NDC point.
func (p Projector) Ray(x, y float64) geom.Ray {
	th := p.tanHalf()
	dir := p.Basis.Forward.
		Add(p.Basis.Right.Scale(x * th * p.Aspect)).
		Add(p.Basis.Up.Scale(y * th))
	return geom.Ray{Origin: p.Eye, Dir: dir.Normalized()}
}

// Project maps a world point to NDC plus its view depth. Points behind the
// near plane are not projectable.
func (p Projector) Project(w geom.Vec3) (x, y, depth float64, ok bool) {
	rel := w.Sub(p.Eye)
	depth = rel.Dot(p.Basis.Forward)
	if depth <= nearPlane {
		return 0, 0, depth, false
	}
	th := p.tanHalf()
	x = rel.Dot(p.Basis.Right) / (depth * th * p.Aspect)
	y = rel.Dot(p.Basis.Up) / (depth * th)
	return x, y, depth, true
}

// WorldPerCell returns the world-space size of one cell column and row at
// the given view depth.
func (p Projector) WorldPerCell(vp Viewport, depth float64) (col, row float64) {
	if !vp.Valid() {
		return 0, 0
	}
	th := p.tanHalf()
	col = 2 * depth * th * p.Aspect / float64(vp.Width)
	row = 2 * depth * th / float64(vp.Height)
	return col, row
}
