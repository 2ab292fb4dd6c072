package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wg-mesh/pkg/config"
	"wg-mesh/pkg/logging"
	"wg-mesh/pkg/model"
	"wg-mesh/pkg/store"
	"wg-mesh/pkg/topology"
	"wg-mesh/pkg/version"
)

var errNoConfig = errors.New("no topology file given (--config or WGMESH_CONFIG)")

// app carries the state shared by every subcommand.
type app struct {
	settings    config.Settings
	configPath  string
	historyPath string
	logLevel    string
	dryRun      bool
	logger      *zap.Logger
}

func NewRootCmd(settings config.Settings) *cobra.Command {
	a := &app{settings: settings, logger: zap.NewNop()}
	c := &cobra.Command{
		Use:           "wgmesh",
		Short:         "wgmesh: generates full-mesh WireGuard configs from a topology file",
		Version:       version.Build,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.NewWriter(cmd.ErrOrStderr(), a.logLevel)
			if err != nil {
				return err
			}
			a.logger = l
			return nil
		},
	}
	c.SetVersionTemplate(version.String() + "\n")
	c.PersistentFlags().StringVarP(&a.configPath, "config", "c", settings.ConfigPath, "topology file (.json, .yaml or .yml)")
	c.PersistentFlags().StringVar(&a.historyPath, "history", settings.HistoryDB, "sqlite file recording every written topology")
	c.PersistentFlags().StringVar(&a.logLevel, "log-level", settings.LogLevel, "debug, info, warn or error")
	c.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, "print topologies instead of writing them, record no history")

	c.AddCommand(newInitCmd(a))
	c.AddCommand(newConvertCmd(a))
	c.AddCommand(newAppendCmd(a))
	c.AddCommand(newShowCmd(a))
	c.AddCommand(newHistoryCmd(a))
	return c
}

// store returns the topology file, or an in-memory copy of it in dry-run mode.
func (a *app) store() (store.TopologyStore, error) {
	if a.configPath == "" {
		return nil, errNoConfig
	}
	file := store.NewFileStore(a.configPath)
	if !a.dryRun {
		return file, nil
	}
	mem, err := store.NewMemoryStoreFrom(file)
	if err != nil {
		return nil, err
	}
	return mem, nil
}

// commit saves t to s. In dry-run mode s is in memory and t is printed instead
// of being logged and recorded.
func (a *app) commit(cmd *cobra.Command, s store.TopologyStore, op string, t *model.Topology) error {
	if err := s.Save(t); err != nil {
		return err
	}
	if a.dryRun {
		return a.print(cmd, t)
	}
	a.logger.Info("wrote topology", zap.String("op", op), zap.String("path", a.configPath), zap.Int("nodes", len(t.Nodes)))
	if op == "" {
		return nil
	}
	return a.record(cmd.Context(), op, t)
}

// print writes t to the command output in the format of the topology file.
func (a *app) print(cmd *cobra.Command, t *model.Topology) error {
	data, err := store.CodecFor(a.configPath).Encode(t)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (a *app) load() (*model.Topology, error) {
	s, err := a.store()
	if err != nil {
		return nil, err
	}
	return s.Load()
}

func (a *app) growOptions() []topology.Option {
	return []topology.Option{
		topology.WithIPv4Base(a.settings.IPv4Base),
		topology.WithIPv6Base(a.settings.IPv6Base),
		topology.WithEndpoint(a.settings.Endpoint),
	}
}

// record adds t to the history database when one is configured.
func (a *app) record(ctx context.Context, op string, t *model.Topology) error {
	if a.historyPath == "" {
		return nil
	}
	h, err := store.OpenHistory(ctx, a.historyPath)
	if err != nil {
		return err
	}
	defer h.Close()
	v, err := h.Record(ctx, op, t)
	if err != nil {
		return err
	}
	a.logger.Info("recorded snapshot", zap.String("op", op), zap.Int64("version", v))
	return nil
}

func (a *app) history(ctx context.Context) (*store.History, error) {
	if a.historyPath == "" {
		return nil, errors.New("no history database given (--history or WGMESH_HISTORY_DB)")
	}
	return store.OpenHistory(ctx, a.historyPath)
}
