package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// globalOptions holds flags shared by every subcommand.
type globalOptions struct {
	addr    string
	timeout time.Duration
	// dial overrides the connection, used by tests.
	dial func(addr string) (*grpc.ClientConn, error)
}

func defaultDial(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func (o *globalOptions) connect(cmd *cobra.Command) (*grpc.ClientConn, context.Context, context.CancelFunc, error) {
	dial := o.dial
	if dial == nil {
		dial = defaultDial
	}
	conn, err := dial(o.addr)
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	return conn, ctx, cancel, nil
}

// NewRootCmd creates the root command. dial may be nil.
func NewRootCmd(dial func(addr string) (*grpc.ClientConn, error)) *cobra.Command {
	opts := &globalOptions{dial: dial}

	cmd := &cobra.Command{
		Use:           "authctl",
		Short:         "Client for the quickswap auth service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.addr, "addr", "localhost:8080", "auth server address")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-call timeout")

	cmd.AddCommand(
		newLoginCmd(opts),
		newRegisterCmd(opts),
		newChangePasswordCmd(opts),
		newForgotCmd(opts),
		newResendCmd(opts),
		newVerifyCmd(opts),
		newResetCmd(opts),
		newDevOTPCmd(opts),
	)
	return cmd
}
