// Command fermion renders YAML statement documents into parameterized SQL.
package main

import (
	"fmt"
	"os"

	"github.com/mitranim/fermion/cmd/fermion/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
