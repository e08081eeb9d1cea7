package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build metadata, set by `mage build` through -ldflags -X.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

// buildInfo is what `diligence-engine version` reports.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// currentBuild collects the injected metadata. A binary built without
// mage falls back to the VCS stamp the go tool embeds.
func currentBuild() buildInfo {
	b := buildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && b.Commit == "":
				b.Commit = shortCommit(s.Value)
			case s.Key == "vcs.time" && b.BuildDate == "":
				b.BuildDate = s.Value
			}
		}
	}
	return b
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func writeBuild(w io.Writer, b buildInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}
	rev := b.Commit
	if rev == "" {
		rev = "unknown"
	}
	line := fmt.Sprintf("diligence-engine %s (commit %s", b.Version, rev)
	if b.BuildDate != "" {
		line += ", built " + b.BuildDate
	}
	_, err := fmt.Fprintf(w, "%s) %s %s\n", line, b.GoVersion, b.Platform)
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build metadata for diligence-engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return writeBuild(os.Stdout, currentBuild(), asJSON)
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "print build metadata as JSON")
	rootCmd.AddCommand(versionCmd)
}
