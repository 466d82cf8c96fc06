// Command aretha drives toggle widgets from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/go-aretha/aretha/cmd/aretha/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
