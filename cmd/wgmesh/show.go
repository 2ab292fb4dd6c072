package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wg-mesh/pkg/wireguard"
)

func newShowCmd(a *app) *cobra.Command {
	var tag string
	c := &cobra.Command{
		Use:   "show",
		Short: "prints the rendered config of one node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.load()
			if err != nil {
				return err
			}
			conf, err := wireguard.RenderFor(t, tag)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), conf)
			return err
		},
	}
	c.Flags().StringVarP(&tag, "tag", "t", "", "tag of the node to render")
	_ = c.MarkFlagRequired("tag")
	return c
}
