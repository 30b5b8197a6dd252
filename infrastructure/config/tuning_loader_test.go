package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainconfig "netviz/domain/config"
)

func writeTuningFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTuning_EmptyPathReturnsDefaults(t *testing.T) {
	tuning, err := LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, domainconfig.DefaultTuning(), tuning)
}

func TestLoadTuning_OverlaysFileOnDefaults(t *testing.T) {
	path := writeTuningFile(t, `
layout:
  iterations: 150
  link_distance: 90
viewport:
  max_scale: 8
`)

	tuning, err := LoadTuning(path)
	require.NoError(t, err)

	assert.Equal(t, 150, tuning.Layout.Iterations)
	assert.Equal(t, 90.0, tuning.Layout.LinkDistance)
	assert.Equal(t, 8.0, tuning.Viewport.MaxScale)

	// Untouched fields keep their defaults
	defaults := domainconfig.DefaultTuning()
	assert.Equal(t, defaults.Layout.RepulsionStrength, tuning.Layout.RepulsionStrength)
	assert.Equal(t, defaults.Style.SelfRadius, tuning.Style.SelfRadius)
	assert.Equal(t, defaults.Viewport.MinScale, tuning.Viewport.MinScale)
}

func TestLoadTuning_MissingFileIsAnError(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading tuning file")
}

func TestLoadTuning_MalformedYAML(t *testing.T) {
	path := writeTuningFile(t, "layout: [not, a, mapping")

	_, err := LoadTuning(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing tuning file")
}

func TestLoadTuning_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero iterations", "layout:\n  iterations: 0\n"},
		{"negative min distance", "layout:\n  min_distance: -1\n"},
		{"inverted scale bounds", "viewport:\n  min_scale: 5\n  max_scale: 2\n"},
		{"zoom step at unity", "viewport:\n  zoom_step_factor: 1\n"},
		{"inverted radius bounds", "style:\n  min_radius: 20\n  max_radius: 10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTuning(writeTuningFile(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}
