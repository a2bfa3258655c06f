// Package main provides the entry point for the resume-match HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matchd",
	Short: "Resume-to-job match API server",
	Long: "matchd exposes REST endpoints to score a Markdown résumé against a structured " +
		"job description, using the OpenAI completion API when configured and a deterministic " +
		"heuristic fallback otherwise.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
