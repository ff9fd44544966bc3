package main

import (
	"os"

	"github.com/msto63/monkey/cmd/monkey/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
