package main

import (
	"os"

	"github.com/mytheresa/go-configurable-catalog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
