// Command pizzeria runs the order service and its maintenance tasks.
//
//	pizzeria serve                  # HTTP API on APP_PORT
//	pizzeria migrate                # apply pending migrations
//	pizzeria migrate:rollback
//	pizzeria migrate:status
//	pizzeria seed                   # demo users and orders
//	pizzeria route:list
//	pizzeria user:create --username bob --email bob@example.com --password secret --staff
//	pizzeria token:issue bob
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/shashiranjanraj/pizzeria/database/migrations"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pizzeria",
		Short:         "Pizza order service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newRouteListCmd())
	root.AddCommand(newMigrateCmd(), newMigrateRollbackCmd(), newMigrateStatusCmd(), newSeedCmd())
	root.AddCommand(newUserCreateCmd(), newTokenIssueCmd())
	return root
}
