// Package config loads process configuration from files and the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv overlays environment variables onto target.
//
// Fields whose variable is unset keep their current value, so callers can
// seed target with defaults or file values first.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
