package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"wg-mesh/pkg/model"
)

func newHistoryCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "inspects recorded topology snapshots",
	}
	c.AddCommand(newHistoryListCmd(a))
	c.AddCommand(newHistoryShowCmd(a))
	return c
}

func newHistoryListCmd(a *app) *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "list",
		Short: "lists snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.history(cmd.Context())
			if err != nil {
				return err
			}
			defer h.Close()
			snaps, err := h.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tTIME\tOP\tNODES\tHASH")
			for _, s := range snaps {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", s.Version, s.Time.Format(time.RFC3339), s.Op, s.Nodes, s.Hash[:12])
			}
			return w.Flush()
		},
	}
	c.Flags().IntVar(&limit, "limit", 20, "maximum number of snapshots, 0 for all")
	return c
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var version int64
	c := &cobra.Command{
		Use:   "show",
		Short: "prints the topology of one snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.history(cmd.Context())
			if err != nil {
				return err
			}
			defer h.Close()
			_, t, err := h.Get(cmd.Context(), version)
			if err != nil {
				return err
			}
			data, err := model.Save(t)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	c.Flags().Int64Var(&version, "version", 0, "snapshot version")
	_ = c.MarkFlagRequired("version")
	return c
}
