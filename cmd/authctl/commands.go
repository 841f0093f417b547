package main

import (
	"github.com/spf13/cobra"

	authv1 "quickswap/backend/api/auth/v1"
	devv1 "quickswap/backend/api/dev/v1"
)

// authCall runs fn against an AuthService client and prints its message.
func authCall(cmd *cobra.Command, opts *globalOptions, fn func(c authv1.AuthServiceClient, cmd *cobra.Command) error) error {
	conn, ctx, cancel, err := opts.connect(cmd)
	if err != nil {
		return err
	}
	defer cancel()
	defer func() { _ = conn.Close() }()
	cmd.SetContext(ctx)
	return fn(authv1.NewAuthServiceClient(conn), cmd)
}

func newLoginCmd(opts *globalOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print the account profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return authCall(cmd, opts, func(c authv1.AuthServiceClient, cmd *cobra.Command) error {
				resp, err := c.Login(cmd.Context(), &authv1.LoginRequest{Email: email, Password: password})
				if err != nil {
					return err
				}
				cmd.Printf("%s (%s)\n", resp.GetFullName(), resp.GetEmail())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(opts *globalOptions) *cobra.Command {
	var name, email, password, confirm string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if confirm == "" {
				confirm = password
			}
			return authCall(cmd, opts, func(c authv1.AuthServiceClient, cmd *cobra.Command) error {
				resp, err := c.Register(cmd.Context(), &authv1.RegisterRequest{
					FullName: name, Email: email, Password: password, ConfirmPassword: confirm,
				})
				if err != nil {
					return err
				}
				cmd.Printf("registered %s (%s)\n", resp.GetFullName(), resp.GetEmail())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation (defaults to --password)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newChangePasswordCmd(opts *globalOptions) *cobra.Command {
	var email, oldPassword, newPassword string
	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Replace the password after checking the old one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return authCall(cmd, opts, func(c authv1.AuthServiceClient, cmd *cobra.Command) error {
				resp, err := c.ChangePassword(cmd.Context(), &authv1.ChangePasswordRequest{
					Email: email, OldPassword: oldPassword, NewPassword: newPassword,
				})
				if err != nil {
					return err
				}
				cmd.Println(resp.GetMessage())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&oldPassword, "old", "", "current password")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}

func newForgotCmd(opts *globalOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "forgot",
		Short: "Issue a recovery code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return authCall(cmd, opts, func(c authv1.AuthServiceClient, cmd *cobra.Command) error {
				resp, err := c.ForgotPassword(cmd.Context(), &authv1.ForgotPasswordRequest{Email: email})
				if err != nil {
					return err
				}
				cmd.Println(resp.GetMessage())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newResendCmd(opts *globalOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resend",
		Short: "Issue a new recovery code, replacing the previous one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return authCall(cmd, opts, func(c authv1.AuthServiceClient, cmd *cobra.Command) error {
				resp, err := c.ResendOTP(cmd.Context(), &authv1.ResendOTPRequest{Email: email})
				if err != nil {
					return err
				}
				cmd.Println(resp.GetMessage())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newVerifyCmd(opts *globalOptions) *cobra.Command {
	var email, code string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a recovery code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return authCall(cmd, opts, func(c authv1.AuthServiceClient, cmd *cobra.Command) error {
				resp, err := c.VerifyOTP(cmd.Context(), &authv1.VerifyOTPRequest{Email: email, Otp: code})
				if err != nil {
					return err
				}
				cmd.Println(resp.GetMessage())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&code, "code", "", "4-digit code")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newResetCmd(opts *globalOptions) *cobra.Command {
	var email, newPassword string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password using a verified code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return authCall(cmd, opts, func(c authv1.AuthServiceClient, cmd *cobra.Command) error {
				resp, err := c.ResetPasswordWithOTP(cmd.Context(), &authv1.ResetPasswordWithOTPRequest{
					Email: email, NewPassword: newPassword,
				})
				if err != nil {
					return err
				}
				cmd.Println(resp.GetMessage())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}

func newDevOTPCmd(opts *globalOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "dev-otp",
		Short: "Read the latest code from a server running with OTP_RETURN_TO_CLIENT",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, ctx, cancel, err := opts.connect(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer func() { _ = conn.Close() }()
			resp, err := devv1.NewDevServiceClient(conn).GetOTP(ctx, &devv1.GetOTPRequest{Email: email})
			if err != nil {
				return err
			}
			cmd.Println(resp.GetOtp())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
