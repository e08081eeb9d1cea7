//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func binary() string {
	return filepath.Join(binDir, binName)
}

// Snapshot builds the CLI, then fetches, scores and stores the feed.
func Snapshot() error {
	mg.Deps(Init, Build)
	fmt.Println("[snapshot] Saving a ranked snapshot of the configured feed.")
	return sh.RunV(binary(), "snapshot", "save")
}

// Serve builds the CLI and starts the HTTP API.
func Serve() error {
	mg.Deps(Init, Build)
	return sh.RunV(binary(), "serve")
}

// Weights prints the effective scoring weights.
func Weights() error {
	mg.Deps(Build)
	return sh.RunV(binary(), "weights")
}
