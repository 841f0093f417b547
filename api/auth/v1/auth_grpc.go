package authv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"quickswap/backend/api/wire"
)

const ServiceName = "quickswap.auth.v1.AuthService"

const (
	AuthService_Login_FullMethodName                = "/" + ServiceName + "/Login"
	AuthService_Register_FullMethodName             = "/" + ServiceName + "/Register"
	AuthService_ChangePassword_FullMethodName       = "/" + ServiceName + "/ChangePassword"
	AuthService_ForgotPassword_FullMethodName       = "/" + ServiceName + "/ForgotPassword"
	AuthService_ResendOTP_FullMethodName            = "/" + ServiceName + "/ResendOTP"
	AuthService_VerifyOTP_FullMethodName            = "/" + ServiceName + "/VerifyOTP"
	AuthService_ResetPasswordWithOTP_FullMethodName = "/" + ServiceName + "/ResetPasswordWithOTP"
	AuthService_Logout_FullMethodName               = "/" + ServiceName + "/Logout"
)

// AuthServiceServer is the server API for AuthService.
type AuthServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error)
	ForgotPassword(context.Context, *ForgotPasswordRequest) (*ForgotPasswordResponse, error)
	ResendOTP(context.Context, *ResendOTPRequest) (*ResendOTPResponse, error)
	VerifyOTP(context.Context, *VerifyOTPRequest) (*VerifyOTPResponse, error)
	ResetPasswordWithOTP(context.Context, *ResetPasswordWithOTPRequest) (*ResetPasswordWithOTPResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
}

// UnimplementedAuthServiceServer returns Unimplemented for every method. Embed it for forward compatibility.
type UnimplementedAuthServiceServer struct{}

func (UnimplementedAuthServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedAuthServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}

func (UnimplementedAuthServiceServer) ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangePassword not implemented")
}

func (UnimplementedAuthServiceServer) ForgotPassword(context.Context, *ForgotPasswordRequest) (*ForgotPasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ForgotPassword not implemented")
}

func (UnimplementedAuthServiceServer) ResendOTP(context.Context, *ResendOTPRequest) (*ResendOTPResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResendOTP not implemented")
}

func (UnimplementedAuthServiceServer) VerifyOTP(context.Context, *VerifyOTPRequest) (*VerifyOTPResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyOTP not implemented")
}

func (UnimplementedAuthServiceServer) ResetPasswordWithOTP(context.Context, *ResetPasswordWithOTPRequest) (*ResetPasswordWithOTPResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResetPasswordWithOTP not implemented")
}

func (UnimplementedAuthServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}

// AuthService_ServiceDesc is the grpc.ServiceDesc for AuthService.
var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Login",
			Handler:    wire.UnaryHandler(AuthService_Login_FullMethodName, AuthServiceServer.Login),
		},
		{
			MethodName: "Register",
			Handler:    wire.UnaryHandler(AuthService_Register_FullMethodName, AuthServiceServer.Register),
		},
		{
			MethodName: "ChangePassword",
			Handler:    wire.UnaryHandler(AuthService_ChangePassword_FullMethodName, AuthServiceServer.ChangePassword),
		},
		{
			MethodName: "ForgotPassword",
			Handler:    wire.UnaryHandler(AuthService_ForgotPassword_FullMethodName, AuthServiceServer.ForgotPassword),
		},
		{
			MethodName: "ResendOTP",
			Handler:    wire.UnaryHandler(AuthService_ResendOTP_FullMethodName, AuthServiceServer.ResendOTP),
		},
		{
			MethodName: "VerifyOTP",
			Handler:    wire.UnaryHandler(AuthService_VerifyOTP_FullMethodName, AuthServiceServer.VerifyOTP),
		},
		{
			MethodName: "ResetPasswordWithOTP",
			Handler:    wire.UnaryHandler(AuthService_ResetPasswordWithOTP_FullMethodName, AuthServiceServer.ResetPasswordWithOTP),
		},
		{
			MethodName: "Logout",
			Handler:    wire.UnaryHandler(AuthService_Logout_FullMethodName, AuthServiceServer.Logout),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth/v1/auth.proto",
}

// RegisterAuthServiceServer registers srv on s.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

// AuthServiceClient is the client API for AuthService.
type AuthServiceClient interface {
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error)
	ForgotPassword(ctx context.Context, in *ForgotPasswordRequest, opts ...grpc.CallOption) (*ForgotPasswordResponse, error)
	ResendOTP(ctx context.Context, in *ResendOTPRequest, opts ...grpc.CallOption) (*ResendOTPResponse, error)
	VerifyOTP(ctx context.Context, in *VerifyOTPRequest, opts ...grpc.CallOption) (*VerifyOTPResponse, error)
	ResetPasswordWithOTP(ctx context.Context, in *ResetPasswordWithOTPRequest, opts ...grpc.CallOption) (*ResetPasswordWithOTPResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAuthServiceClient returns a client that sends JSON-encoded requests over cc.
func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc: cc}
}

func (c *authServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	out := new(LoginResponse)
	opts = append([]grpc.CallOption{wire.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, AuthService_Login_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	out := new(RegisterResponse)
	opts = append([]grpc.CallOption{wire.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, AuthService_Register_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error) {
	out := new(ChangePasswordResponse)
	opts = append([]grpc.CallOption{wire.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, AuthService_ChangePassword_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) ForgotPassword(ctx context.Context, in *ForgotPasswordRequest, opts ...grpc.CallOption) (*ForgotPasswordResponse, error) {
	out := new(ForgotPasswordResponse)
	opts = append([]grpc.CallOption{wire.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, AuthService_ForgotPassword_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) ResendOTP(ctx context.Context, in *ResendOTPRequest, opts ...grpc.CallOption) (*ResendOTPResponse, error) {
	out := new(ResendOTPResponse)
	opts = append([]grpc.CallOption{wire.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, AuthService_ResendOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) VerifyOTP(ctx context.Context, in *VerifyOTPRequest, opts ...grpc.CallOption) (*VerifyOTPResponse, error) {
	out := new(VerifyOTPResponse)
	opts = append([]grpc.CallOption{wire.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, AuthService_VerifyOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) ResetPasswordWithOTP(ctx context.Context, in *ResetPasswordWithOTPRequest, opts ...grpc.CallOption) (*ResetPasswordWithOTPResponse, error) {
	out := new(ResetPasswordWithOTPResponse)
	opts = append([]grpc.CallOption{wire.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, AuthService_ResetPasswordWithOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	out := new(LogoutResponse)
	opts = append([]grpc.CallOption{wire.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, AuthService_Logout_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
