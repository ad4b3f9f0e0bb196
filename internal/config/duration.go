package config

import (
	"fmt"
	"time"
)

// ParseStepDelay parses StepDelay; an empty value means no delay.
func (r RenderConfig) ParseStepDelay() (time.Duration, error) {
	if r.StepDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.StepDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid render step_delay %q: %w", r.StepDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("render step_delay must not be negative, got %s", d)
	}
	return d, nil
}
