// Command hpagen runs the offline hierarchical pathfinding precomputation
// pipeline against a tile world stored in SQLite.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/hpagen/cmd/hpagen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
