// main executable.
package main

import (
	"os"

	"github.com/pngme/pngme/internal/core"
)

func main() {
	if !core.Run(os.Args[1:]) {
		os.Exit(1)
	}
}
