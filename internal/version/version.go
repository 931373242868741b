// Package version reports the build that is running. The values are set
// at link time:
//
//	go build -ldflags "-X github.com/Norgate-AV/deskctl/internal/version.version=v1.2.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info describes the running binary
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Platform  string
}

// Get collects the link-time values and the runtime platform
func Get() Info {
	return Info{
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String formats i the way `deskctl info` prints it
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s %s)", i.Version, i.Commit, i.Date, i.GoVersion, i.Platform)
}

// IsRelease reports whether the binary was built with a version injected
func (i Info) IsRelease() bool {
	return i.Version != "dev"
}

// GetVersion returns the bare version for cobra's --version
func GetVersion() string {
	return version
}

// GetFullVersion returns the version with build details
func GetFullVersion() string {
	return Get().String()
}
