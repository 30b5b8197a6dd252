package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domainconfig "netviz/domain/config"
)

// LoadTuning returns the engine tuning, starting from the compiled
// defaults and overlaying the optional YAML override file. A missing
// path means defaults; a present but unreadable file is a startup
// error rather than a silent fallback.
func LoadTuning(path string) (*domainconfig.Tuning, error) {
	tuning := domainconfig.DefaultTuning()
	if path == "" {
		return tuning, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tuning file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, tuning); err != nil {
		return nil, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}

	if err := validateTuning(tuning); err != nil {
		return nil, fmt.Errorf("tuning file %s: %w", path, err)
	}

	return tuning, nil
}

func validateTuning(t *domainconfig.Tuning) error {
	if t.Layout.Iterations <= 0 {
		return fmt.Errorf("layout.iterations must be positive")
	}
	if t.Layout.MinDistance <= 0 {
		return fmt.Errorf("layout.min_distance must be positive")
	}
	if t.Viewport.MinScale <= 0 || t.Viewport.MaxScale < t.Viewport.MinScale {
		return fmt.Errorf("viewport scale bounds are inverted")
	}
	if t.Viewport.ZoomStepFactor <= 1 {
		return fmt.Errorf("viewport.zoom_step_factor must exceed 1")
	}
	if t.Style.MinRadius <= 0 || t.Style.MaxRadius < t.Style.MinRadius {
		return fmt.Errorf("style radius bounds are inverted")
	}
	return nil
}
