// Package buildinfo reports version data injected at link time:
//
//	go build -ldflags "-X github.com/VinkoRobi2/CameYa-sub001/internal/buildinfo.buildVersion=v1.0.0 \
//	  -X github.com/VinkoRobi2/CameYa-sub001/internal/buildinfo.buildDate=2025-10-01 \
//	  -X github.com/VinkoRobi2/CameYa-sub001/internal/buildinfo.buildCommit=abc123"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes the build version, date and commit to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(buildVersion))
	fmt.Fprintf(w, "Build date: %s\n", orNA(buildDate))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(buildCommit))
}
