package ssr_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochronus/hello-inertia/core/config"
	"github.com/ochronus/hello-inertia/core/ssr"
)

func artifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ssr.js")
	require.NoError(t, os.WriteFile(path, []byte("// renderer\n"), 0o600))
	return path
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	present := artifact(t)
	missing := filepath.Join(t.TempDir(), "missing.js")

	tests := []struct {
		name    string
		gate    ssr.Gate
		enabled bool
	}{
		{
			name:    "prod without dev server and artifact present",
			gate:    ssr.Gate{Mode: config.ModeProd, Switch: config.SSRAuto, Artifact: present},
			enabled: true,
		},
		{
			name: "dev mode with artifact present",
			gate: ssr.Gate{Mode: config.ModeDev, Switch: config.SSRAuto, Artifact: present},
		},
		{
			name: "test mode",
			gate: ssr.Gate{Mode: config.ModeTest, Switch: config.SSRAuto, Artifact: present},
		},
		{
			name: "prod with active dev server",
			gate: ssr.Gate{Mode: config.ModeProd, Switch: config.SSRAuto, DevServerActive: true, Artifact: present},
		},
		{
			name: "prod with missing artifact",
			gate: ssr.Gate{Mode: config.ModeProd, Switch: config.SSRAuto, Artifact: missing},
		},
		{
			name: "override off in prod",
			gate: ssr.Gate{Mode: config.ModeProd, Switch: config.SSROff, Artifact: present},
		},
		{
			name:    "override on in dev with dev server",
			gate:    ssr.Gate{Mode: config.ModeDev, Switch: config.SSROn, DevServerActive: true, Artifact: present},
			enabled: true,
		},
		{
			name: "override on never bypasses artifact check",
			gate: ssr.Gate{Mode: config.ModeProd, Switch: config.SSROn, Artifact: missing},
		},
		{
			name: "artifact is a directory",
			gate: ssr.Gate{Mode: config.ModeProd, Switch: config.SSROn, Artifact: t.TempDir()},
		},
		{
			name: "empty artifact path",
			gate: ssr.Gate{Mode: config.ModeProd, Switch: config.SSROn},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ssr.Evaluate(tt.gate)
			assert.Equal(t, tt.enabled, d.Enabled)
			assert.NotEmpty(t, d.Reason)
		})
	}
}
