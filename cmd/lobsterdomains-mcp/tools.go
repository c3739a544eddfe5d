package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lobsterdomains/mcp-server/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range tools.AllNames {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n    %s\n", name, name.Description())
		}
	},
}
