package main

import (
	"fmt"
	"os"

	"github.com/addrsplit/addrsplit/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "addrsplit: %s\n", err)
		os.Exit(1)
	}
}
