// Command widgetkit renders the toolkit's widgets without a window.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/widgetkit/cmd/widgetkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
