//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search builds the binary and runs a live search for LITMAP_QUERY
// (default "bobur") against the configured sources.
func Search() error {
	mg.Deps(Build)
	q := os.Getenv("LITMAP_QUERY")
	if q == "" {
		q = "bobur"
	}
	fmt.Printf("[search] %q\n", q)
	return sh.RunV(filepath.Join(binDir, binName), "search", q)
}

// Network builds the binary and prints the citation graph of LITMAP_PAPER
// (default W2741809807).
func Network() error {
	mg.Deps(Build)
	id := os.Getenv("LITMAP_PAPER")
	if id == "" {
		id = "W2741809807"
	}
	return sh.RunV(filepath.Join(binDir, binName), "network", id)
}
