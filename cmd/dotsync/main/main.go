package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotsync/cmd/dotsync"
	"github.com/arthur-debert/dotsync/pkg/ui/styles"
)

func main() {
	rootCmd := dotsync.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
