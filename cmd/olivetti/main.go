package main

import (
	"os"

	"github.com/superhappyfuntimellc/Olivetti/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
