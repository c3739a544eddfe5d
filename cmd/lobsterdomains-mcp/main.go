// Command lobsterdomains-mcp runs the Lobster Domains MCP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "lobsterdomains-mcp",
	Short: "Lobster Domains MCP server",
	Long:  "MCP server exposing the Lobster Domains registrar: availability lookups, purchases, DNS, nameservers and domain settings.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
}
