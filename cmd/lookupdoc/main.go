// Package main is the entry point for the lookupdoc binary.
package main

import (
	"os"

	cli "lookupdoc/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
