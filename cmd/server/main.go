package main

import (
	"os"

	"github.com/spf13/cobra"
)

// main exposes the server and its operator commands. Business logic lives in
// the internal service packages.
func main() {
	root := &cobra.Command{
		Use:          "intake",
		Short:        "Clinical intake trust and audit service",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), schemaCmd(), inviteCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
