package handler

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	authv1 "quickswap/backend/api/auth/v1"
	"quickswap/backend/internal/account/domain"
	"quickswap/backend/internal/identity/service"
)

// Authenticator is the orchestrator behind AuthServer.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.Profile, error)
	Register(ctx context.Context, fullName, email, password, confirmPassword string) (domain.Profile, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error
	RequestOTP(ctx context.Context, email string) error
	ConfirmOTP(ctx context.Context, email, code string) error
	ResetWithOTP(ctx context.Context, email, newPassword string) error
}

// AuthServer implements authv1.AuthServiceServer. Requests are validated here; business
// errors from the orchestrator are mapped to status codes by authErr.
type AuthServer struct {
	authv1.UnimplementedAuthServiceServer
	auth   Authenticator
	logger *slog.Logger
}

// NewAuthServer returns an AuthServer. If auth is nil, every method returns Unavailable.
func NewAuthServer(auth Authenticator, logger *slog.Logger) *AuthServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServer{auth: auth, logger: logger}
}

var errNotConfigured = status.Error(codes.Unavailable, "auth service not configured")

func (s *AuthServer) Login(ctx context.Context, req *authv1.LoginRequest) (*authv1.LoginResponse, error) {
	if s.auth == nil {
		return nil, errNotConfigured
	}
	if err := validate(
		checkEmail(req.GetEmail()),
		required("password", req.GetPassword()),
	); err != nil {
		return nil, err
	}
	p, err := s.auth.Login(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.LoginResponse{Email: p.Email, FullName: p.FullName}, nil
}

func (s *AuthServer) Register(ctx context.Context, req *authv1.RegisterRequest) (*authv1.RegisterResponse, error) {
	if s.auth == nil {
		return nil, errNotConfigured
	}
	if err := validate(
		required("full_name", req.GetFullName()),
		checkEmail(req.GetEmail()),
		checkPassword("password", req.GetPassword()),
		required("confirm_password", req.GetConfirmPassword()),
	); err != nil {
		return nil, err
	}
	p, err := s.auth.Register(ctx, req.GetFullName(), req.GetEmail(), req.GetPassword(), req.GetConfirmPassword())
	if err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.RegisterResponse{Email: p.Email, FullName: p.FullName}, nil
}

func (s *AuthServer) ChangePassword(ctx context.Context, req *authv1.ChangePasswordRequest) (*authv1.ChangePasswordResponse, error) {
	if s.auth == nil {
		return nil, errNotConfigured
	}
	if err := validate(
		checkEmail(req.GetEmail()),
		required("old_password", req.GetOldPassword()),
		checkPassword("new_password", req.GetNewPassword()),
	); err != nil {
		return nil, err
	}
	if err := s.auth.ChangePassword(ctx, req.GetEmail(), req.GetOldPassword(), req.GetNewPassword()); err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.ChangePasswordResponse{Message: "password changed"}, nil
}

func (s *AuthServer) ForgotPassword(ctx context.Context, req *authv1.ForgotPasswordRequest) (*authv1.ForgotPasswordResponse, error) {
	if err := s.requestOTP(ctx, req.GetEmail()); err != nil {
		return nil, err
	}
	return &authv1.ForgotPasswordResponse{Message: "otp sent"}, nil
}

func (s *AuthServer) ResendOTP(ctx context.Context, req *authv1.ResendOTPRequest) (*authv1.ResendOTPResponse, error) {
	if err := s.requestOTP(ctx, req.GetEmail()); err != nil {
		return nil, err
	}
	return &authv1.ResendOTPResponse{Message: "otp resent"}, nil
}

func (s *AuthServer) requestOTP(ctx context.Context, email string) error {
	if s.auth == nil {
		return errNotConfigured
	}
	if err := validate(checkEmail(email)); err != nil {
		return err
	}
	if err := s.auth.RequestOTP(ctx, email); err != nil {
		return s.authErr(ctx, err)
	}
	return nil
}

func (s *AuthServer) VerifyOTP(ctx context.Context, req *authv1.VerifyOTPRequest) (*authv1.VerifyOTPResponse, error) {
	if s.auth == nil {
		return nil, errNotConfigured
	}
	if err := validate(
		checkEmail(req.GetEmail()),
		checkOTP(req.GetOtp()),
	); err != nil {
		return nil, err
	}
	if err := s.auth.ConfirmOTP(ctx, req.GetEmail(), req.GetOtp()); err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.VerifyOTPResponse{Message: "otp verified"}, nil
}

func (s *AuthServer) ResetPasswordWithOTP(ctx context.Context, req *authv1.ResetPasswordWithOTPRequest) (*authv1.ResetPasswordWithOTPResponse, error) {
	if s.auth == nil {
		return nil, errNotConfigured
	}
	if err := validate(
		checkEmail(req.GetEmail()),
		checkPassword("new_password", req.GetNewPassword()),
	); err != nil {
		return nil, err
	}
	if err := s.auth.ResetWithOTP(ctx, req.GetEmail(), req.GetNewPassword()); err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.ResetPasswordWithOTPResponse{Message: "password reset"}, nil
}

// Logout has no server-side state to clear; no sessions are issued.
func (s *AuthServer) Logout(ctx context.Context, req *authv1.LogoutRequest) (*authv1.LogoutResponse, error) {
	return &authv1.LogoutResponse{Message: "logged out"}, nil
}

// authErr maps orchestrator errors to gRPC status. Unknown errors are logged and hidden behind Internal.
func (s *AuthServer) authErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, service.ErrAccountNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrPasswordMismatch):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrSamePassword):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrInvalidOldPassword):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, service.ErrInvalidOTP):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, service.ErrNotVerified):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		s.logger.ErrorContext(ctx, "auth request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
