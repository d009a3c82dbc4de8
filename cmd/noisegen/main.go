// Command noisegen renders, compiles and converts procedural noise graphs.
package main

import (
	"os"

	"github.com/gogpu/noise/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
