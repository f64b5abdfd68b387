package tuning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"portalmap.dev/internal/portal"
	"portalmap.dev/internal/waypoint"
)

type Tuning struct {
	// MaxPortalSpan is the widest group, in blocks per axis, still treated as a portal.
	MaxPortalSpan int `yaml:"max_portal_span"`

	Waypoint WaypointStyle `yaml:"waypoint"`
}

type WaypointStyle struct {
	NamePrefix string `yaml:"name_prefix"`
	Initials   string `yaml:"initials"`
	Color      int    `yaml:"color"`
	Set        string `yaml:"set"`
}

func Defaults() Tuning {
	return Tuning{
		MaxPortalSpan: portal.DefaultMaxSpan,
		Waypoint: WaypointStyle{
			NamePrefix: waypoint.DefaultNamePrefix,
			Initials:   waypoint.DefaultInitials,
			Color:      waypoint.DefaultColor,
			Set:        waypoint.DefaultSet,
		},
	}
}

// Load reads a tuning file. An empty path returns the defaults. Keys missing
// from the file keep their default values.
func Load(path string) (Tuning, error) {
	t := Defaults()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (t *Tuning) Normalize() {
	if t == nil {
		return
	}
	d := Defaults()
	if t.MaxPortalSpan == 0 {
		t.MaxPortalSpan = d.MaxPortalSpan
	}
	t.Waypoint.NamePrefix = strings.TrimSpace(t.Waypoint.NamePrefix)
	if t.Waypoint.NamePrefix == "" {
		t.Waypoint.NamePrefix = d.Waypoint.NamePrefix
	}
	t.Waypoint.Initials = strings.TrimSpace(t.Waypoint.Initials)
	if t.Waypoint.Initials == "" {
		t.Waypoint.Initials = d.Waypoint.Initials
	}
	t.Waypoint.Set = strings.TrimSpace(t.Waypoint.Set)
	if t.Waypoint.Set == "" {
		t.Waypoint.Set = d.Waypoint.Set
	}
}

func (t Tuning) Validate() error {
	t.Normalize()
	if t.MaxPortalSpan < 1 {
		return fmt.Errorf("max_portal_span must be >= 1")
	}
	if c := t.Waypoint.Color; c < 0 || c > 15 {
		return fmt.Errorf("waypoint.color must be in [0, 15], got %d", c)
	}
	for _, f := range []struct{ key, val string }{
		{"waypoint.name_prefix", t.Waypoint.NamePrefix},
		{"waypoint.initials", t.Waypoint.Initials},
		{"waypoint.set", t.Waypoint.Set},
	} {
		if strings.ContainsAny(f.val, ":\n") {
			return fmt.Errorf("%s must not contain ':' or newlines", f.key)
		}
	}
	return nil
}

// Style returns the waypoint attributes for generated entries.
func (t Tuning) Style() waypoint.Style {
	t.Normalize()
	return waypoint.Style{
		NamePrefix: t.Waypoint.NamePrefix,
		Initials:   t.Waypoint.Initials,
		Color:      t.Waypoint.Color,
		Set:        t.Waypoint.Set,
	}
}
