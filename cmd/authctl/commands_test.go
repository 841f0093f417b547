package main

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"quickswap/backend/internal/account/repository"
	"quickswap/backend/internal/devotp"
	"quickswap/backend/internal/identity/service"
	"quickswap/backend/internal/logging"
	"quickswap/backend/internal/otp"
	"quickswap/backend/internal/security"
	"quickswap/backend/internal/server"
)

func startServer(t *testing.T) func(string) (*grpc.ClientConn, error) {
	t.Helper()
	devStore := devotp.NewMemoryStore(0)
	auth := service.NewAuthService(repository.NewMemoryRepository(), security.NewHasher(4),
		otp.NewMemoryRegistry(), devStore, logging.Discard())
	s := server.NewGRPCServer(server.Deps{Auth: auth, DevOTPStore: devStore, Logger: logging.Discard()})

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	return func(string) (*grpc.ClientConn, error) {
		return grpc.NewClient("passthrough:///bufnet",
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
				return lis.DialContext(ctx)
			}),
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
	}
}

func run(t *testing.T, dial func(string) (*grpc.ClientConn, error), args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(dial)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAuthctl_RecoveryFlow(t *testing.T) {
	dial := startServer(t)

	out, err := run(t, dial, "register", "--name", "Ada", "--email", "ada@example.com", "--password", "password123")
	require.NoError(t, err)
	assert.Contains(t, out, "registered Ada (ada@example.com)")

	out, err = run(t, dial, "login", "--email", "ada@example.com", "--password", "password123")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada (ada@example.com)")

	_, err = run(t, dial, "forgot", "--email", "ada@example.com")
	require.NoError(t, err)

	out, err = run(t, dial, "dev-otp", "--email", "ada@example.com")
	require.NoError(t, err)
	code := strings.TrimSpace(out)
	require.Len(t, code, 4)

	_, err = run(t, dial, "verify", "--email", "ada@example.com", "--code", code)
	require.NoError(t, err)

	_, err = run(t, dial, "reset", "--email", "ada@example.com", "--new", "newpassword1")
	require.NoError(t, err)

	_, err = run(t, dial, "change-password", "--email", "ada@example.com", "--old", "newpassword1", "--new", "another-pass")
	require.NoError(t, err)

	_, err = run(t, dial, "login", "--email", "ada@example.com", "--password", "password123")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestAuthctl_ServerErrorsSurface(t *testing.T) {
	dial := startServer(t)

	_, err := run(t, dial, "register", "--name", "Ada", "--email", "ada@example.com",
		"--password", "password123", "--confirm", "password124")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = run(t, dial, "resend", "--email", "ghost@example.com")
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestAuthctl_RequiredFlags(t *testing.T) {
	_, err := run(t, nil, "login", "--email", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}
