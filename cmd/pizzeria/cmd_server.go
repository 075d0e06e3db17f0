package main

import (
	"fmt"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/internal/kernel"
	"github.com/shashiranjanraj/pizzeria/internal/server"
	"github.com/shashiranjanraj/pizzeria/pkg/cache"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"run"},
		Short:   "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			k, err := kernel.Boot(ctx)
			if err != nil {
				return err
			}
			defer k.Close()

			return server.Start(ctx, ":"+config.AppPort(), k.Handler())
		},
	}
}

func newRouteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List all named routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := kernel.New(nil, cache.New(nil), nil).Router().Routes()
			sort.Slice(infos, func(i, j int) bool {
				if infos[i].Path != infos[j].Path {
					return infos[i].Path < infos[j].Path
				}
				return infos[i].Method < infos[j].Method
			})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME")
			for _, ri := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
			}
			return w.Flush()
		},
	}
}
