package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tasnim.dev/lbcheck/internal/action"
	awsclient "tasnim.dev/lbcheck/internal/aws"
	"tasnim.dev/lbcheck/internal/config"
	"tasnim.dev/lbcheck/internal/filter"
	"tasnim.dev/lbcheck/internal/inventory"
	"tasnim.dev/lbcheck/internal/logger"
	"tasnim.dev/lbcheck/internal/model"
	"tasnim.dev/lbcheck/internal/reconcile"
	"tasnim.dev/lbcheck/internal/remoteflag"
)

type topologyOptions struct {
	debug       int
	name        string
	profile     string
	region      string
	exclude     string
	remoteFlags string
	flagTimeout time.Duration
}

// topologySettings is the validated form of topologyOptions merged with the
// config file.
type topologySettings struct {
	names       []string
	pattern     string
	exclude     string
	flags       map[string]string
	flagTimeout time.Duration
}

// resolve validates the flags and merges them over cfg. CLI values win; remote
// flags are merged per balancer name.
func (o topologyOptions) resolve(cfg *config.Config) (topologySettings, error) {
	if err := validateDebug(o.debug); err != nil {
		return topologySettings{}, err
	}
	if o.flagTimeout < 0 {
		return topologySettings{}, configErrorf("--flag-timeout must not be negative, got %s", o.flagTimeout)
	}

	cliFlags, err := remoteflag.ParseSpec(o.remoteFlags)
	if err != nil {
		return topologySettings{}, &ConfigError{Err: err}
	}
	flags := map[string]string{}
	maps.Copy(flags, cfg.RemoteFlags)
	maps.Copy(flags, cliFlags)

	exclude := cfg.Exclude
	if o.exclude != "" {
		exclude = o.exclude
	}
	if _, err := filter.CompileExclude(exclude); err != nil {
		return topologySettings{}, &ConfigError{Err: err}
	}

	timeout := cfg.FlagTimeout()
	if o.flagTimeout > 0 {
		timeout = o.flagTimeout
	}

	return topologySettings{
		names:       inventory.ScopeNames(o.name),
		pattern:     o.name,
		exclude:     exclude,
		flags:       flags,
		flagTimeout: timeout,
	}, nil
}

type topologySources struct {
	Legacy    inventory.LegacyBalancers
	Modern    inventory.ModernBalancers
	Instances inventory.InstanceLister
	Flags     remoteflag.Fetcher
}

func NewTopologyCmd() *cobra.Command {
	opts := topologyOptions{}

	cmd := &cobra.Command{
		Use:   "topology",
		Short: "Check zones and instance health behind load balancers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return configErrorf("loading config: %w", err)
			}
			settings, err := opts.resolve(cfg)
			if err != nil {
				return err
			}
			profile, region := cfg.Merge(opts.profile, opts.region)

			log, err := logger.New("topology", opts.debug)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			client, err := awsclient.NewServiceClient(ctx, profile, region)
			if err != nil {
				return &ConfigError{Err: err}
			}
			log.Info("checking topology",
				zap.String("account", accountID(ctx, log, client)),
				zap.String("region", client.Region),
				zap.String("load_balancer", opts.name))

			src := topologySources{
				Legacy:    client.ClassicELB,
				Modern:    client.ELB,
				Instances: client.EC2,
				Flags:     remoteflag.NewHTTPFetcher(settings.flagTimeout),
			}
			return runTopology(ctx, cmd.OutOrStdout(), log, src, settings, opts.debug)
		},
	}

	cmd.Flags().IntVarP(&opts.debug, "debug", "d", 0, "Verbosity level (0-2)")
	cmd.Flags().StringVarP(&opts.name, "load-balancer-name", "e", inventory.AllBalancers, "Load balancer to check, or \"all\"")
	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&opts.region, "region", "r", "", "AWS region to use")
	cmd.Flags().StringVarP(&opts.exclude, "exclude", "x", "", "Skip load balancers whose name matches this regular expression")
	cmd.Flags().StringVarP(&opts.remoteFlags, "remote-flags", "R", "", "Remote activation flags as name#url,name#url")
	cmd.Flags().DurationVar(&opts.flagTimeout, "flag-timeout", 0, "Timeout for each remote flag request (default 5s)")

	return cmd
}

func runTopology(ctx context.Context, w io.Writer, log *zap.Logger, src topologySources, settings topologySettings, verbosity int) error {
	var (
		legacy, modern []model.BalancerTopology
		instances      map[string]model.InstanceRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		legacy, err = inventory.FetchLegacyTopology(gctx, src.Legacy, settings.names)
		return err
	})
	g.Go(func() (err error) {
		modern, err = inventory.FetchModernTopology(gctx, src.Modern, settings.names)
		return err
	})
	g.Go(func() (err error) {
		instances, err = inventory.FetchInstances(gctx, src.Instances)
		return err
	})
	if err := g.Wait(); err != nil {
		logFetchError(log, err)
		return err
	}
	if err := inventory.RequireFound(settings.names, legacy, modern); err != nil {
		log.Error("load balancer not found", zap.Strings("names", settings.names))
		return err
	}

	exclude, err := filter.CompileExclude(settings.exclude)
	if err != nil {
		return &ConfigError{Err: err}
	}
	balancers := filter.Balancers(ctx, log, append(legacy, modern...), filter.BalancerOptions{
		Pattern: settings.pattern,
		Exclude: exclude,
		Flags:   settings.flags,
		Fetcher: src.Flags,
	})
	log.Debug("inventory fetched",
		zap.Int("balancers", len(balancers)),
		zap.Int("instances", len(instances)))
	for _, b := range balancers {
		log.Debug("balancer",
			zap.String("name", b.Name),
			zap.Strings("zones", b.EnabledZones),
			zap.Bool("cross_zone", b.CrossZoneEnabled))
	}

	result := reconcile.Topology(balancers, instances)
	return statusResult(action.Act(w, result, action.ModeMonitor, verbosity))
}
