package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "deadmock",
	Short: "A mock HTTP origin server driven by declarative mapping files",
	Long: `deadmock answers HTTP/1.1 requests from a directory of TOML mapping
files: each mapping pairs a request pattern (method, url, headers, or
regex variants of each) with either a canned response or a rule to
proxy the request to a real upstream.

Quick start:
  deadmock serve     # start the mock server
  deadmock validate  # lint a mappings directory without binding a socket`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
