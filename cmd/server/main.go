// Package main is the entry point for the coc-api server and its tools
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/coc-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "coc-api",
	Short: "Call of Cthulhu investigator API",
	Long:  `coc-api rolls dice expressions, generates investigators and serves dice sessions over gRPC.`,
}

func main() {
	// a missing .env is fine; the environment and flags still apply
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(investigatorCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
