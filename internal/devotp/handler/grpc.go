// Package handler implements the dev-only gRPC DevService.
package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	devv1 "quickswap/backend/api/dev/v1"
	"quickswap/backend/internal/devotp"
)

const devOTPNote = "DEV MODE ONLY"

// Server implements DevService. Only registered when dev OTP is enabled and not production.
type Server struct {
	devv1.UnimplementedDevServiceServer
	store devotp.Store
}

// NewServer returns a DevService server that reads OTP from the given store.
func NewServer(store devotp.Store) *Server {
	return &Server{store: store}
}

// GetOTP returns the latest plain OTP issued for email. Returns NotFound if missing or expired.
func (s *Server) GetOTP(ctx context.Context, req *devv1.GetOTPRequest) (*devv1.GetOTPResponse, error) {
	email := req.GetEmail()
	if email == "" {
		return nil, status.Error(codes.InvalidArgument, "email is required")
	}
	if s.store == nil {
		return nil, status.Error(codes.Unavailable, "dev otp store not configured")
	}
	otp, ok := s.store.Get(ctx, email)
	if !ok {
		return nil, status.Error(codes.NotFound, "OTP not found or expired")
	}
	return &devv1.GetOTPResponse{
		Otp:  otp,
		Note: devOTPNote,
	}, nil
}
