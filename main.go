package main

import (
	"os"

	"github.com/olivierh59500/particle-links/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
