// Package version tells which build of ft2pently is running.
package version

import "runtime/debug"

// Version can be set at build time, e.g.
// go build -ldflags "-X github.com/ft2pently/ft2pently/version.Version=$(git describe --dirty)"
var Version string

// Hash is the short VCS revision of the build, with -dirty appended when the
// tree had local changes.
var Hash = revision()

// VersionOrHash is printed by ft2pently -v.
var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	if Hash != "" {
		return Hash
	}
	return "devel"
}()

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var rev string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev != "" && dirty {
		rev += "-dirty"
	}
	return rev
}
