package main

import (
	"github.com/spf13/cobra"

	"wg-mesh/pkg/output"
	"wg-mesh/pkg/wireguard"
)

func newConvertCmd(a *app) *cobra.Command {
	var outDir string
	var allowDuplicates bool
	c := &cobra.Command{
		Use:   "convert",
		Short: "renders one <tag>.conf per node into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.load()
			if err != nil {
				return err
			}
			policy := wireguard.Strict
			if allowDuplicates {
				policy = wireguard.Overwrite
			}
			confs, err := wireguard.RenderAll(t, wireguard.WithDuplicateTags(policy), wireguard.WithLogger(a.logger))
			if err != nil {
				return err
			}
			_, err = output.WriteConfigs(outDir, confs, a.logger)
			return err
		},
	}
	c.Flags().StringVarP(&outDir, "output", "o", "", "existing directory for the rendered configs")
	c.Flags().BoolVar(&allowDuplicates, "allow-duplicate-tags", false, "keep the last node of a duplicated tag instead of failing")
	_ = c.MarkFlagRequired("output")
	return c
}
