package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"tasnim.dev/lbcheck/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "lbcheck",
		Short:         "Load balancer certificate and topology checks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &cmd.ConfigError{Err: err}
	})

	rootCmd.AddCommand(cmd.NewCertificatesCmd())
	rootCmd.AddCommand(cmd.NewTopologyCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil && !cmd.Reported(err) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cmd.ExitCode(err))
}
