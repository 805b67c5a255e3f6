package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/handler"
	myGRPC "github.com/MKhiriev/secure-vault/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/secure-vault/internal/handler/http"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type fakeAppInfo struct{}

func (fakeAppInfo) GetAppVersion(context.Context) models.VersionResponse {
	return models.VersionResponse{Version: "v0.0.1"}
}

func testConfig() config.Server {
	return config.Server{
		HTTPAddress:    "127.0.0.1:0",
		GRPCAddress:    "127.0.0.1:0",
		RequestTimeout: time.Second,
		LoginRateLimit: 10,
		LoginBurst:     10,
	}
}

func TestNewServer_NoServers(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoListeners)
}

func TestHTTPServer_ServeAndShutdown(t *testing.T) {
	cfg := testConfig()
	services := &service.Services{AppInfoService: fakeAppInfo{}}
	srv := newHTTPServer(myHTTP.NewHandler(services, cfg, logger.Nop()).Init(), cfg, logger.Nop())

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.serve(l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/api/version")
	require.NoError(t, err)
	defer resp.Body.Close()

	var version models.VersionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&version))
	assert.Equal(t, "v0.0.1", version.Version)

	srv.Shutdown()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("HTTP server did not stop")
	}
}

func TestGRPCServer_Health(t *testing.T) {
	cfg := testConfig()
	srv := newGRPCServer(myGRPC.NewHandler(nil, nil, logger.Nop()), cfg, logger.Nop())

	l := bufconn.Listen(1 << 20)
	go func() { _ = srv.serve(l) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return l.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: myGRPC.VaultServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	srv.Shutdown()
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	cfg := testConfig()
	cfg.GRPCAddress = ""
	services := &service.Services{AppInfoService: fakeAppInfo{}}

	handlers, err := handler.NewHandlers(services, nil, cfg, logger.Nop())
	require.NoError(t, err)
	s, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.(*server).run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return")
	}
}
