package buildinfo

import (
	"runtime"
	"strings"
)

// Injectées à la compilation via -ldflags, par exemple :
//
//	-X github.com/autumnleaf-ra/Anime-API/internal/buildinfo.Version=v1.2.0
//	-X github.com/autumnleaf-ra/Anime-API/internal/buildinfo.Commit=abcdef
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"goVersion"`
}

func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
}

// String: "v1.2.0 (abcdef, 2026-01-18)", les champs vides sont omis.
func (i Info) String() string {
	var extra []string
	for _, v := range []string{i.Commit, i.Date} {
		if v != "" {
			extra = append(extra, v)
		}
	}
	if len(extra) == 0 {
		return i.Version
	}
	return i.Version + " (" + strings.Join(extra, ", ") + ")"
}
