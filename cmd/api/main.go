package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version se sobrescribe en build con -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cafeterias-api",
		Short:         "API de inventario para restaurantes",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Sin subcomando arranca el servidor.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), false)
		},
	}

	cmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Imprime la versión",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Println(Version)
		},
	})
	return cmd
}
