package main

import (
	"os"

	"github.com/Abdul234Malik/NELFUND/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
