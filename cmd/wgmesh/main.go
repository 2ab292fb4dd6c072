package main

import (
	"fmt"
	"os"

	"wg-mesh/pkg/config"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := NewRootCmd(settings).Execute(); err != nil {
		os.Exit(1)
	}
}
