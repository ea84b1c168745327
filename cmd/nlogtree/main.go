// Command nlogtree drives a logger tree from the command line. It loads a
// YAML config, emits records through named loggers and prints the
// resulting hierarchy.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
