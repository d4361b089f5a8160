package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tanview/pkg/tangent"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks values that would otherwise fail later at window or
// object setup.
func (c *Config) Validate() error {
	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, g.Width, g.Height)
	}
	if g.FOV <= 0 || g.FOV >= 180 {
		return fmt.Errorf("%w: fov %v out of (0, 180)", ErrInvalid, g.FOV)
	}
	if g.Near <= 0 || g.Far <= g.Near {
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, g.Near, g.Far)
	}
	if _, err := c.TangentOptions(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// TangentOptions converts the tangents section into generation options.
func (c *Config) TangentOptions() (tangent.Options, error) {
	return tangent.ParseOptions(c.Tangents.Mode, c.Tangents.Degenerate)
}
