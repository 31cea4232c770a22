// Command plantnet is the ops CLI: serve the API, seed fixtures, ensure
// indexes, and inspect the route table.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plantnet-dev/plantnet/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "plantnet",
	Short: "PlantNet marketplace API",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Run()
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, seedCmd, indexCmd, routesCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
