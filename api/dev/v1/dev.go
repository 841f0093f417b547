// Package devv1 defines the dev-only quickswap.dev.v1 DevService used to read issued OTP codes
// in local environments. Servers register it only outside production.
package devv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"quickswap/backend/api/wire"
)

const ServiceName = "quickswap.dev.v1.DevService"

const DevService_GetOTP_FullMethodName = "/" + ServiceName + "/GetOTP"

type GetOTPRequest struct {
	Email string `json:"email,omitempty"`
}

func (x *GetOTPRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

type GetOTPResponse struct {
	Otp  string `json:"otp,omitempty"`
	Note string `json:"note,omitempty"`
}

func (x *GetOTPResponse) GetOtp() string {
	if x != nil {
		return x.Otp
	}
	return ""
}

func (x *GetOTPResponse) GetNote() string {
	if x != nil {
		return x.Note
	}
	return ""
}

// DevServiceServer is the server API for DevService.
type DevServiceServer interface {
	GetOTP(context.Context, *GetOTPRequest) (*GetOTPResponse, error)
}

// UnimplementedDevServiceServer returns Unimplemented for every method.
type UnimplementedDevServiceServer struct{}

func (UnimplementedDevServiceServer) GetOTP(context.Context, *GetOTPRequest) (*GetOTPResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOTP not implemented")
}

// DevService_ServiceDesc is the grpc.ServiceDesc for DevService.
var DevService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DevServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetOTP",
			Handler:    wire.UnaryHandler(DevService_GetOTP_FullMethodName, DevServiceServer.GetOTP),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dev/v1/dev.proto",
}

// RegisterDevServiceServer registers srv on s.
func RegisterDevServiceServer(s grpc.ServiceRegistrar, srv DevServiceServer) {
	s.RegisterService(&DevService_ServiceDesc, srv)
}

// DevServiceClient is the client API for DevService.
type DevServiceClient interface {
	GetOTP(ctx context.Context, in *GetOTPRequest, opts ...grpc.CallOption) (*GetOTPResponse, error)
}

type devServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDevServiceClient returns a client that sends JSON-encoded requests over cc.
func NewDevServiceClient(cc grpc.ClientConnInterface) DevServiceClient {
	return &devServiceClient{cc: cc}
}

func (c *devServiceClient) GetOTP(ctx context.Context, in *GetOTPRequest, opts ...grpc.CallOption) (*GetOTPResponse, error) {
	out := new(GetOTPResponse)
	opts = append([]grpc.CallOption{wire.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, DevService_GetOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
