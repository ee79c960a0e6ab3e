package cmd

import (
	"context"
	"fmt"
	"io"

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
)

type certificateOptions struct {
	apply   bool
	dryRun  bool
	nagios  bool
	debug   int
	expr    string
	profile string
	region  string
}

func (o certificateOptions) validate() error {
	if err := validateDebug(o.debug); err != nil {
		return err
	}
	if o.apply && o.nagios {
		return configErrorf("--apply cannot be combined with --nagios")
	}
	return nil
}

// mode resolves the action mode. --nagios wins over --dry-run, and
// --dry-run wins over --apply.
func (o certificateOptions) mode(log *zap.Logger) action.Mode {
	switch {
	case o.nagios:
		if o.dryRun {
			log.Warn("--dry-run is ignored in nagios mode")
		}
		return action.ModeMonitor
	case o.dryRun:
		return action.ModeDryRun
	case o.apply:
		return action.ModeApply
	default:
		return action.ModeReport
	}
}

type certificateSources struct {
	Keystore    inventory.KeystoreLister
	CertManager inventory.CertManagerLister
	Legacy      inventory.LegacyBalancers
	Modern      inventory.ModernBalancers
	Deleter     action.Deleter
}

func NewCertificatesCmd() *cobra.Command {
	opts := certificateOptions{}

	cmd := &cobra.Command{
		Use:   "certificates",
		Short: "Compare loaded certificates with the ones bound to load balancers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return configErrorf("loading config: %w", err)
			}
			profile, region := cfg.Merge(opts.profile, opts.region)

			log, err := logger.New("certificates", opts.debug)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			mode := opts.mode(log)

			ctx := cmd.Context()
			client, err := awsclient.NewServiceClient(ctx, profile, region)
			if err != nil {
				return &ConfigError{Err: err}
			}
			log.Info("checking certificates",
				zap.String("account", accountID(ctx, log, client)),
				zap.String("region", client.Region),
				zap.Stringer("mode", mode))

			src := certificateSources{
				Keystore:    client.IAM,
				CertManager: client.ACM,
				Legacy:      client.ClassicELB,
				Modern:      client.ELB,
				Deleter:     client.IAM,
			}
			return runCertificates(ctx, cmd.OutOrStdout(), log, src, opts.expr, mode, opts.debug)
		},
	}

	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Delete unused keystore certificates")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show the certificates --apply would delete")
	cmd.Flags().BoolVar(&opts.nagios, "nagios", false, "Print a single monitoring line and exit with its status")
	cmd.Flags().IntVarP(&opts.debug, "debug", "d", 0, "Verbosity level (0-2)")
	cmd.Flags().StringVarP(&opts.expr, "expr", "e", filter.All, "Only consider certificate ARNs containing this pattern")
	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&opts.region, "region", "r", "", "AWS region to use")

	return cmd
}

func runCertificates(ctx context.Context, w io.Writer, log *zap.Logger, src certificateSources, expr string, mode action.Mode, verbosity int) error {
	var (
		keystore, certManager []model.CertificateRecord
		legacy, modern        []model.ListenerBinding
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		keystore, err = inventory.FetchKeystore(gctx, src.Keystore)
		return err
	})
	g.Go(func() (err error) {
		certManager, err = inventory.FetchCertManager(gctx, src.CertManager)
		return err
	})
	g.Go(func() (err error) {
		legacy, err = inventory.FetchLegacyBindings(gctx, src.Legacy, nil)
		return err
	})
	g.Go(func() (err error) {
		modern, err = inventory.FetchModernBindings(gctx, src.Modern, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		logFetchError(log, err)
		return err
	}

	certs := filter.Certificates(append(keystore, certManager...), expr)
	bindings := filter.Bindings(append(legacy, modern...), expr)
	log.Debug("inventory fetched",
		zap.Int("certificates", len(certs)),
		zap.Int("bindings", len(bindings)))

	result := reconcile.Certificates(certs, bindings)
	code := action.Act(w, result, mode, verbosity)

	if mode.Cleans() {
		plan := action.PlanRemovals(result, certs)
		if _, err := action.Cleanup(ctx, w, log, plan, src.Deleter, mode == action.ModeDryRun); err != nil {
			logFetchError(log, err)
			return err
		}
	}
	return statusResult(code)
}
