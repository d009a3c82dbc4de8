package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test in an empty working directory so a stray
// noisegen.yaml cannot leak in.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "terrain", cfg.Preset)
	assert.Equal(t, 512, cfg.Render.Width)
	assert.Equal(t, 256, cfg.Render.Height)
	assert.Equal(t, "plane", cfg.Render.Projection)
	assert.Equal(t, 4.0, cfg.Render.Scale)
	assert.Equal(t, "noise_value", cfg.Shader.Entry)
	assert.True(t, cfg.Shader.Compute)
	assert.Equal(t, 64, cfg.Shader.Workgroup)
	assert.Equal(t, "BuildNoise", cfg.Code.Func)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := inTempDir(t)
	yaml := "preset: cells\nseed: 9\nwidth: 64\nprojection: sphere\nlighting: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noisegen.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "cells", cfg.Preset)
	assert.Equal(t, int32(9), cfg.Seed)
	assert.Equal(t, 64, cfg.Render.Width)
	assert.Equal(t, "sphere", cfg.Render.Projection)
	assert.True(t, cfg.Render.Lighting)
}

func TestLoad_Precedence(t *testing.T) {
	dir := inTempDir(t)
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("width: 64\nheight: 32\nseed: 1\n"), 0o644))
	t.Setenv("NOISEGEN_HEIGHT", "48")
	t.Setenv("NOISEGEN_SEED", "5")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("seed", 0, "")
	require.NoError(t, flags.Parse([]string{"--seed=7"}))

	cfg, err := Load(flags, file)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Render.Width, "file value")
	assert.Equal(t, 48, cfg.Render.Height, "environment beats file")
	assert.Equal(t, int32(7), cfg.Seed, "flag beats environment")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"zero width", map[string]string{"NOISEGEN_WIDTH": "0"}},
		{"bad projection", map[string]string{"NOISEGEN_PROJECTION": "torus"}},
		{"bad gradient", map[string]string{"NOISEGEN_GRADIENT": "rainbow"}},
		{"negative scale", map[string]string{"NOISEGEN_SCALE": "-1"}},
		{"zero workgroup", map[string]string{"NOISEGEN_WORKGROUP": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(nil, "")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := inTempDir(t)
	_, err := Load(nil, filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}
