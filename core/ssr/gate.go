package ssr

import (
	"os"

	"github.com/ochronus/hello-inertia/core/config"
)

// Gate holds the inputs of the launch decision.
type Gate struct {
	Mode            config.Mode
	Switch          config.SSRSwitch
	DevServerActive bool
	// Artifact is the renderer entry point. Empty means the supervisor's configured artifact.
	Artifact string
}

// Decision is the outcome of Evaluate. Reason names the unmet condition when
// Enabled is false, or why the renderer was allowed otherwise.
type Decision struct {
	Enabled bool
	Reason  string
}

// Evaluate applies the launch rules. The explicit switch takes precedence over
// the mode, and the mode over dev-server detection. The artifact check is
// never bypassed.
func Evaluate(g Gate) Decision {
	var reason string
	switch g.Switch {
	case config.SSROff:
		return Decision{Reason: "ssr disabled by override"}
	case config.SSROn:
		reason = "ssr forced on by override"
	default:
		if g.Mode != config.ModeProd {
			return Decision{Reason: "ssr requires prod mode, running in " + g.Mode.String()}
		}
		if g.DevServerActive {
			return Decision{Reason: "dev server is active"}
		}
		reason = "prod mode without dev server"
	}

	if !artifactExists(g.Artifact) {
		return Decision{Reason: "renderer artifact not found at " + g.Artifact}
	}
	return Decision{Enabled: true, Reason: reason}
}

func artifactExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
