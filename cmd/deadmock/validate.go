package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/deadmock/adapters/mappingstore"
)

var validateMappingsPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load a mappings directory and report parse errors without binding a socket",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateMappingsPath, "mappings-path", "m", "mappings", "directory of TOML mapping files")
}

func runValidate(cmd *cobra.Command, args []string) error {
	store, err := mappingstore.Load(validateMappingsPath)
	if err != nil {
		return fmt.Errorf("validate mappings: %w", err)
	}

	for _, m := range store.All() {
		fmt.Println(m.String())
	}
	fmt.Printf("%d mapping(s) loaded from %s, no parse errors\n", store.Len(), validateMappingsPath)
	return nil
}
