package tuning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"portalmap.dev/internal/waypoint"
)

func TestLoad_ConfigsMatchDefaults(t *testing.T) {
	got, err := Load("../../configs/portalmap.yaml")
	if err != nil {
		t.Fatalf("load portalmap.yaml: %v", err)
	}
	if diff := cmp.Diff(Defaults(), got); diff != "" {
		t.Fatalf("shipped config drifted from defaults (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(waypoint.DefaultStyle(), got.Style()); diff != "" {
		t.Fatalf("style mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	got, err := Load("  ")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.MaxPortalSpan != 10 || got.Waypoint.Color != 13 {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "portalmap.yaml")
	body := "max_portal_span: 24\nwaypoint:\n  initials: N\n  color: 0\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := waypoint.Style{NamePrefix: "portal", Initials: "N", Color: 0, Set: "gui.xaero_default"}
	if diff := cmp.Diff(want, got.Style()); diff != "" {
		t.Fatalf("style mismatch (-want +got):\n%s", diff)
	}
	if got.MaxPortalSpan != 24 {
		t.Fatalf("max_portal_span: got %d want 24", got.MaxPortalSpan)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"negative span", "max_portal_span: -1\n", "max_portal_span"},
		{"color range", "waypoint:\n  color: 16\n", "waypoint.color"},
		{"colon in prefix", "waypoint:\n  name_prefix: \"a:b\"\n", "waypoint.name_prefix"},
		{"colon in set", "waypoint:\n  set: \"x:y\"\n", "waypoint.set"},
		{"bad yaml", "max_portal_span: [\n", "yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "portalmap.yaml")
			if err := os.WriteFile(p, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := Load(p)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %v, want error mentioning %q", err, tc.want)
			}
		})
	}
}

func TestLoad_ErrorNamesPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom.yaml")
	for _, body := range []string{"max_portal_span: [\n", "max_portal_span: -1\n"} {
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := Load(p)
		if err == nil || !strings.HasPrefix(err.Error(), p+": ") {
			t.Fatalf("body %q: got %v, want error prefixed with %s", body, err, p)
		}
		if strings.Contains(err.Error(), "portalmap.yaml") {
			t.Fatalf("error names the default file: %v", err)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestNormalize_BlankStringsFallBack(t *testing.T) {
	tu := Tuning{Waypoint: WaypointStyle{NamePrefix: "  ", Set: ""}}
	tu.Normalize()
	if tu.MaxPortalSpan != 10 || tu.Waypoint.NamePrefix != "portal" || tu.Waypoint.Initials != "P" || tu.Waypoint.Set != "gui.xaero_default" {
		t.Fatalf("normalize: got %+v", tu)
	}
}
