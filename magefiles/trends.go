//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Trends builds the CLI and counts papers for term between start and end,
// writing outputs to results/ without the terminal display.
func Trends(term, start, end string) error {
	mg.SerialDeps(Build, Init)
	fmt.Printf("[trends] Counting %q from %s to %s.\n", term, start, end)
	return sh.RunV(filepath.Join(binDir, binName), term, start, end,
		"--output-dir", resultsDir, "--no-display", "--xlsx")
}
