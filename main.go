package main

import (
	"os"

	"github.com/capilize/capilize/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
