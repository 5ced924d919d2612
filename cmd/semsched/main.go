package main

import (
	"os"

	"github.com/bnema/semester-scheduler/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
