// Package version holds the build version, set with -ldflags at release time.
package version

import (
	"fmt"
	"runtime"
)

// Version is overridden with -ldflags "-X github.com/cloverkit/cloverkit/pkg/version.Version=v1.2.3".
var Version = "0.0.1-dev"

// Info is the version plus the platform the binary was built for.
type Info struct {
	Version string `yaml:"version" json:"version"`
	OS      string `yaml:"os" json:"os"`
	Arch    string `yaml:"arch" json:"arch"`
	Go      string `yaml:"go" json:"go"`
}

// Get returns the running binary's version info.
func Get() Info {
	return Info{Version: Version, OS: runtime.GOOS, Arch: runtime.GOARCH, Go: runtime.Version()}
}

func (i Info) String() string {
	return fmt.Sprintf("cloverkit %s %s/%s", i.Version, i.OS, i.Arch)
}
