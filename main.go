package main

import (
	"fmt"
	"os"

	"github.com/idelchi/dupfind/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dupfind: %v\n", err)
		os.Exit(1)
	}
}
