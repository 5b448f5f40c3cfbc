// Command skin inspects and previews skins built on the element tree.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/skin/cmd/skin/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
