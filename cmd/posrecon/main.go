// Package main provides the entry point for the posrecon CLI tool.
package main

import (
	"os"

	"github.com/DaveDDH/clave-take-home-sub000/cmd/posrecon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
