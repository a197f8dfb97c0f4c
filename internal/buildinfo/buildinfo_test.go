package buildinfo

import "testing"

func TestInfoString(t *testing.T) {
	cases := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "v1.2.0", Commit: "abcdef"}, "v1.2.0 (abcdef)"},
		{Info{Version: "v1.2.0", Commit: "abcdef", Date: "2026-01-18"}, "v1.2.0 (abcdef, 2026-01-18)"},
	}
	for _, tc := range cases {
		if got := tc.info.String(); got != tc.want {
			t.Fatalf("String(): want %q, got %q", tc.want, got)
		}
	}
}

func TestCurrent(t *testing.T) {
	info := Current()
	if info.Version != Version {
		t.Fatalf("Version: want %q, got %q", Version, info.Version)
	}
	if info.GoVersion == "" {
		t.Fatalf("GoVersion should be set")
	}
}
