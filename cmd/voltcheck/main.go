// Package main is the entry point for the voltcheck CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/voltcheck/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
