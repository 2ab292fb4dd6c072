package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wg-mesh/pkg/topology"
)

func newAppendCmd(a *app) *cobra.Command {
	var tag string
	var count int
	var inPlace bool
	c := &cobra.Command{
		Use:   "append",
		Short: "adds nodes to the topology and prints it, or rewrites the file with --in-place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			t, err := s.Load()
			if err != nil {
				return err
			}
			grown, err := topology.Append(t, tag, count, a.growOptions()...)
			if err != nil {
				return err
			}
			if !inPlace {
				return a.print(cmd, grown)
			}
			a.logger.Debug("appending nodes", zap.String("tag", tag), zap.Int("count", count))
			return a.commit(cmd, s, "append", grown)
		},
	}
	c.Flags().StringVarP(&tag, "tag", "t", "", "tag of the new node, or tag prefix when adding several")
	c.Flags().IntVarP(&count, "count", "n", 1, "number of nodes to add")
	c.Flags().BoolVarP(&inPlace, "in-place", "i", false, "rewrite the topology file instead of printing")
	_ = c.MarkFlagRequired("tag")
	return c
}
