package tangent

import "fmt"

// Mode selects how triangles sharing a vertex combine.
type Mode int

const (
	// ModeOverwrite keeps the tangent of the last triangle that touches a vertex.
	ModeOverwrite Mode = iota
	// ModeAccumulate sums the contributions of all adjacent triangles,
	// then orthogonalizes and normalizes once per vertex.
	ModeAccumulate
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeOverwrite:
		return "overwrite"
	case ModeAccumulate:
		return "accumulate"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a config string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "overwrite":
		return ModeOverwrite, nil
	case "accumulate":
		return ModeAccumulate, nil
	default:
		return 0, fmt.Errorf("unknown tangent mode %q", s)
	}
}

// Degenerate selects what happens to triangles whose UV determinant is zero.
type Degenerate int

const (
	// DegeneratePropagate lets the division by zero through; affected
	// vertices end up with non-finite tangents.
	DegeneratePropagate Degenerate = iota
	// DegenerateSkip ignores the triangle.
	DegenerateSkip
	// DegenerateReject fails the whole generation with ErrDegenerateUV.
	DegenerateReject
)

// String returns the config name of the policy.
func (d Degenerate) String() string {
	switch d {
	case DegeneratePropagate:
		return "propagate"
	case DegenerateSkip:
		return "skip"
	case DegenerateReject:
		return "reject"
	default:
		return fmt.Sprintf("Degenerate(%d)", int(d))
	}
}

// ParseDegenerate converts a config string into a Degenerate policy.
func ParseDegenerate(s string) (Degenerate, error) {
	switch s {
	case "", "propagate":
		return DegeneratePropagate, nil
	case "skip":
		return DegenerateSkip, nil
	case "reject":
		return DegenerateReject, nil
	default:
		return 0, fmt.Errorf("unknown degenerate policy %q", s)
	}
}

// Options controls GenerateWith. The zero value reproduces Generate.
type Options struct {
	Mode       Mode
	Degenerate Degenerate
}

// ParseOptions builds Options from config strings.
func ParseOptions(mode, degenerate string) (Options, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return Options{}, err
	}
	d, err := ParseDegenerate(degenerate)
	if err != nil {
		return Options{}, err
	}
	return Options{Mode: m, Degenerate: d}, nil
}
