package version

import (
	"runtime"
	"runtime/debug"
)

// ModulePath is the import path whose version Get reports.
const ModulePath = "github.com/kbukum/pariter"

// Version overrides the version found in the build info. Set it at build time:
//
//	go build -ldflags "-X github.com/kbukum/pariter/version.Version=v1.2.0"
var Version = ""

// Info describes the pariter build linked into the running binary.
type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"go_version"`
}

// String returns the version with the short revision and dirty marker
// appended when known, e.g. "v1.2.0+3f2a1c9d0b7e.dirty".
func (i Info) String() string {
	s := i.Version
	if i.Revision != "" {
		s += "+" + i.Revision
	}
	if i.Dirty {
		s += ".dirty"
	}
	return s
}

// Get returns the version information of the running binary.
func Get() Info {
	bi, ok := debug.ReadBuildInfo()
	return fromBuildInfo(bi, ok)
}

// Short returns just the version.
func Short() string {
	return Get().Version
}

func fromBuildInfo(bi *debug.BuildInfo, ok bool) Info {
	info := Info{Version: Version, GoVersion: runtime.Version()}
	if !ok || bi == nil {
		if info.Version == "" {
			info.Version = "dev"
		}
		return info
	}

	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	if info.Version == "" {
		info.Version = moduleVersion(bi)
	}

	// VCS settings describe the main module only.
	if bi.Main.Path != ModulePath {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
			if len(info.Revision) > 12 {
				info.Revision = info.Revision[:12]
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

func moduleVersion(bi *debug.BuildInfo) string {
	if bi.Main.Path == ModulePath {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
		return "dev"
	}
	for _, dep := range bi.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return "dev"
}
