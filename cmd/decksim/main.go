// Command decksim estimates the behavior of a deck by Monte-Carlo
// simulation: it resolves a deck list against the card database, runs
// many independent game trials, and prints aggregate statistics.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "decksim: %v\n", err)
		os.Exit(1)
	}
}
