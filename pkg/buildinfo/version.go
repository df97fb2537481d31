// Package buildinfo carries build-time version information, set through
// ldflags:
//
//	go build -ldflags "-X github.com/railsmith/railsmith/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/railsmith/railsmith/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/railsmith/railsmith/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Defaults apply to builds made without ldflags, e.g. go run.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information as a multi-line block.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template used by the root cobra command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
