// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/flowlayout/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/flowlayout/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/flowlayout/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/flowlayout
package buildinfo

import "fmt"

// Set via -ldflags "-X"; the defaults mark a development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns "flowlayout <version>", with the commit appended for
// development builds.
func Short() string {
	if Version == "dev" && Commit != "none" {
		return fmt.Sprintf("flowlayout dev+%s", Commit)
	}
	return "flowlayout " + Version
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt:  %s\n", Version, Commit, Date)
}
