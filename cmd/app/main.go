package main

import (
	"os"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
