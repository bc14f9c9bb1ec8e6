package main

import (
	"os"

	"github.com/yuchen/rootdrill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
