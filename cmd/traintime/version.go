package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Args:  cobra.NoArgs,
	Short: "Print the traintime version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}
