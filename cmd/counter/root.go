package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ryhazerus/dedux"
	"github.com/ryhazerus/dedux/counter"
	"github.com/ryhazerus/dedux/intercept"
	"github.com/ryhazerus/dedux/internal/config"
	"github.com/ryhazerus/dedux/internal/logger"
	"github.com/ryhazerus/dedux/kv"
	"github.com/ryhazerus/dedux/persist"
)

type app struct {
	v          *viper.Viper
	configPath string
	out        io.Writer
	errOut     io.Writer

	log   *slog.Logger
	kv    kv.Store
	store *dedux.Store[int]
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: config.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "counter",
		Short:         "A persistent counter driven by a dedux store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./dedux.yaml if present)")
	root.PersistentFlags().String("backend", "", "storage backend: memory, sqlite, redis, file")
	root.PersistentFlags().String("dsn", "", "sqlite database path")
	root.PersistentFlags().String("redis-addr", "", "redis address")
	root.PersistentFlags().String("dir", "", "directory for the file backend")
	root.PersistentFlags().String("codec", "", "state encoding: json, yaml")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	for key, flag := range map[string]string{
		"storage.backend":    "backend",
		"storage.dsn":        "dsn",
		"storage.redis_addr": "redis-addr",
		"storage.dir":        "dir",
		"storage.codec":      "codec",
		"log.level":          "log-level",
	} {
		_ = a.v.BindPFlag(key, root.PersistentFlags().Lookup(flag))
	}

	root.PersistentPreRunE = a.setup
	root.PersistentPostRunE = a.teardown

	root.AddCommand(
		a.actionCmd("up", "Increment the counter", counter.Increment),
		a.actionCmd("down", "Decrement the counter", counter.Decrement),
		a.actionCmd("reset", "Reset the counter to zero", counter.Reset),
		a.showCmd(),
		a.dispatchCmd(),
	)
	return root
}

// setup loads configuration, opens the backend, and builds the store with
// the logging and persistence interceptors.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.log = logger.New(a.errOut, cfg.Log)

	codec, err := persist.CodecByName(cfg.Storage.Codec)
	if err != nil {
		return err
	}
	a.kv, err = openBackend(cmd.Context(), cfg.Storage, codec)
	if err != nil {
		return err
	}
	mirror, err := persist.NewMirror[int](a.kv, codec, cfg.Storage.Key)
	if err != nil {
		return err
	}

	a.store, err = counter.Open(cmd.Context(), mirror,
		[]dedux.Option{dedux.WithLogger(a.log)},
		intercept.Logging[int](a.log),
	)
	if err != nil {
		return err
	}
	a.log.Debug("counter ready",
		slog.String("backend", cfg.Storage.Backend),
		slog.Int("count", a.store.State()),
	)

	a.store.Subscribe(func(n int) {
		fmt.Fprintln(a.out, n)
	})
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.kv == nil {
		return nil
	}
	return a.kv.Close()
}

func (a *app) actionCmd(use, short string, create func() *dedux.Action) *cobra.Command {
	var times int
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i := 0; i < times; i++ {
				if err := a.store.Dispatch(cmd.Context(), create()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&times, "times", "n", 1, "number of times to dispatch")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current count",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintln(a.out, a.store.State())
			return err
		},
	}
}

func (a *app) dispatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch ACTION_JSON",
		Short: `Dispatch a raw action, e.g. '{"type":"app/counter/INCREMENT"}'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw map[string]any
			if err := json.Unmarshal([]byte(args[0]), &raw); err != nil {
				return fmt.Errorf("decode action: %w", err)
			}
			action, err := dedux.ParseAction(raw)
			if err != nil {
				return err
			}
			return a.store.Dispatch(cmd.Context(), action)
		},
	}
}
