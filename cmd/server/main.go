// Package main implements the wordsprint command, which serves the vocabulary
// quiz API and runs the catalog maintenance tasks (migrations and seeding).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
