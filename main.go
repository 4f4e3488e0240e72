package main

import (
	"os"

	"github.com/hrithikpandeyhp/cortex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
