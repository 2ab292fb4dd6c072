package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wg-mesh/pkg/model"
	"wg-mesh/pkg/store"
	"wg-mesh/pkg/topology"
)

func newInitCmd(a *app) *cobra.Command {
	var count int
	var yes bool
	c := &cobra.Command{
		Use:   "init",
		Short: "writes a new topology, or an editable template without --count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// init replaces the file, so a dry run starts from nothing
			var s store.TopologyStore = store.NewMemoryStore()
			if !a.dryRun {
				var err error
				if s, err = a.store(); err != nil {
					return err
				}
			} else if a.configPath == "" {
				return errNoConfig
			}
			exists, err := s.Exists()
			if err != nil {
				return err
			}
			if exists && !yes {
				ok, err := confirm(cmd, fmt.Sprintf("%s already exists and will be overwritten, continue? [y/N] ", a.configPath))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}

			if !cmd.Flags().Changed("count") {
				// the template is not a valid topology and is not recorded
				return a.commit(cmd, s, "", topology.Template())
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			var t *model.Topology
			if t, err = topology.Generate(count, a.growOptions()...); err != nil {
				return err
			}
			return a.commit(cmd, s, "init", t)
		},
	}
	c.Flags().IntVarP(&count, "count", "n", 0, "number of nodes to generate")
	c.Flags().BoolVarP(&yes, "yes", "y", false, "overwrite an existing file without asking")
	return c
}

// confirm asks prompt on the command output and reads a yes/no answer from
// its input. Anything but y or yes is a no.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
