package main

import (
	"os"

	"github.com/adedotun/medprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
