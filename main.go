package main

import (
	"os"

	"github.com/mjoubert/stackup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
