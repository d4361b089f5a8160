package tangent

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultTolerance is the tolerance Inspect callers use unless they have a
// reason to pick another.
const DefaultTolerance = 1e-4

// Report summarizes the quality of a tangent buffer.
type Report struct {
	Vertices      int     `yaml:"vertices"`
	Zero          int     `yaml:"zero"`           // never written or collapsed by orthogonalization
	NonFinite     int     `yaml:"non_finite"`     // NaN or Inf components
	NonUnit       int     `yaml:"non_unit"`       // finite, nonzero, length off by more than the tolerance
	NonOrthogonal int     `yaml:"non_orthogonal"` // |dot(n, t)| above the tolerance
	MaxLengthErr  float32 `yaml:"max_length_error"`
	MaxDot        float32 `yaml:"max_dot"`
}

// OK reports whether every tangent is finite, unit length and orthogonal to
// its normal. Zero tangents are allowed.
func (r Report) OK() bool {
	return r.NonFinite == 0 && r.NonUnit == 0 && r.NonOrthogonal == 0
}

// Inspect checks each tangent against its normal.
func Inspect(normals, tangents []float32, tol float32) Report {
	r := Report{Vertices: len(tangents) / 3}
	for i := 0; i < r.Vertices; i++ {
		t := vec3At(tangents, uint32(i))
		if !finite(t) {
			r.NonFinite++
			continue
		}
		l := t.Len()
		if l == 0 {
			r.Zero++
			continue
		}
		e := float32(math.Abs(float64(l - 1)))
		r.MaxLengthErr = max(r.MaxLengthErr, e)
		if e > tol {
			r.NonUnit++
		}
		if (i+1)*3 <= len(normals) {
			d := float32(math.Abs(float64(vec3At(normals, uint32(i)).Dot(t))))
			r.MaxDot = max(r.MaxDot, d)
			if d > tol {
				r.NonOrthogonal++
			}
		}
	}
	return r
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
