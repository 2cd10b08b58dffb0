package main

import (
	"fmt"
	"os"

	"github.com/runnerr0/histexport/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "histexport: %v\n", err)
		os.Exit(1)
	}
}
