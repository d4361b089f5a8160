package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		az, el float32
		want   mgl32.Vec3
	}{
		{0, 0, mgl32.Vec3{0, 0, 1}},
		{90, 0, mgl32.Vec3{1, 0, 0}},
		{0, 90, mgl32.Vec3{0, 1, 0}},
		{180, 0, mgl32.Vec3{0, 0, -1}},
	}
	for _, tt := range tests {
		got := SunDirection(tt.az, tt.el)
		if !got.ApproxEqualThreshold(tt.want, 1e-6) {
			t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.az, tt.el, got, tt.want)
		}
	}
}

func TestAnglesRoundTrip(t *testing.T) {
	for _, dir := range []mgl32.Vec3{{1, 1, 0}, {-0.5, 1, -0.5}, {0, -1, 2}} {
		az, el := Angles(dir)
		got := SunDirection(az, el)
		if !got.ApproxEqualThreshold(dir.Normalize(), 1e-5) {
			t.Errorf("round trip of %v gave %v", dir, got)
		}
	}
	if az, el := Angles(mgl32.Vec3{}); az != 0 || el != 90 {
		t.Errorf("zero vector gave (%v, %v)", az, el)
	}
}

func TestDirectionPointsAway(t *testing.T) {
	if got := Direction(0, 90); !got.ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, 1e-6) {
		t.Errorf("overhead sun should shine down, got %v", got)
	}
}
