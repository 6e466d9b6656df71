// Package buildinfo carries version metadata stamped by the release build:
//
//	go build -ldflags "-X github.com/tally-dev/tally/internal/buildinfo.Version=v1.2.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
