package main

import (
	"os"
)

// version will be set while building
var version string

func main() {
	root, a := newRootCmd()
	if err := root.Execute(); err != nil {
		a.log().Error("command failed", "error", err)
		os.Exit(1)
	}
}
