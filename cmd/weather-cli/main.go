package main

import (
	"os"

	"github.com/i474232898/weather-cli/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
