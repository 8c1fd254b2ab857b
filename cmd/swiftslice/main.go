package main

import (
	"os"

	"swiftslice/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
