package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/pawcare/config"
	"github.com/Domenick1991/pawcare/internal/domain"
	"github.com/Domenick1991/pawcare/internal/notification"
	"github.com/Domenick1991/pawcare/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fakeHealthClient struct {
	healthpb.HealthClient
	status healthpb.HealthCheckResponse_ServingStatus
	err    error
}

func (f fakeHealthClient) Check(ctx context.Context, in *healthpb.HealthCheckRequest, opts ...grpc.CallOption) (*healthpb.HealthCheckResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &healthpb.HealthCheckResponse{Status: f.status}, nil
}

func TestHealthHandler(t *testing.T) {
	testCases := []struct {
		name   string
		client fakeHealthClient
		code   int
		body   string
	}{
		{name: "serving", client: fakeHealthClient{status: healthpb.HealthCheckResponse_SERVING}, code: http.StatusOK, body: `{"status":"SERVING"}`},
		{name: "not serving", client: fakeHealthClient{status: healthpb.HealthCheckResponse_NOT_SERVING}, code: http.StatusServiceUnavailable, body: `{"status":"NOT_SERVING"}`},
		{name: "unreachable", client: fakeHealthClient{err: errors.New("connection refused")}, code: http.StatusServiceUnavailable, body: `{"status":"UNKNOWN"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			healthHandler(tc.client)(w, httptest.NewRequest(http.MethodGet, "/healthz", nil), nil)

			assert.Equal(t, tc.code, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestNewServers_RoutesAPI(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	s, err := newServers(&config.Config{HTTP: config.HTTPConfig{Address: ":0"}, GRPC: config.GRPCConfig{Address: "127.0.0.1:0"}}, api)
	require.NoError(t, err)
	defer s.healthConn.Close()

	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestNewBookingRepository(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	repo, err := NewBookingRepository(config.StorageConfig{Backend: config.StorageMemory}, Backends{})
	require.NoError(t, err)
	assert.IsType(t, &repository.MemoryBookingRepository{}, repo)

	repo, err = NewBookingRepository(config.StorageConfig{Backend: config.StorageSlot, SlotKey: "k"}, Backends{Redis: client})
	require.NoError(t, err)
	assert.IsType(t, &repository.SlotBookingRepository{}, repo)

	repo, err = NewBookingRepository(config.StorageConfig{Backend: config.StoragePostgres}, Backends{Pool: &pgxpool.Pool{}})
	require.NoError(t, err)
	assert.IsType(t, &repository.PGBookingRepository{}, repo)

	_, err = NewBookingRepository(config.StorageConfig{Backend: config.StorageSlot}, Backends{})
	assert.Error(t, err)
	_, err = NewBookingRepository(config.StorageConfig{Backend: config.StoragePostgres}, Backends{})
	assert.Error(t, err)
	_, err = NewBookingRepository(config.StorageConfig{Backend: "browser"}, Backends{})
	assert.Error(t, err)
}

func TestNewProviderRepository(t *testing.T) {
	cfg := &config.Config{Providers: []domain.Provider{{ID: "p1"}}}

	assert.IsType(t, &repository.StaticProviderRepository{}, NewProviderRepository(cfg, Backends{}))
	assert.IsType(t, &repository.PGProviderRepository{}, NewProviderRepository(cfg, Backends{Pool: &pgxpool.Pool{}}))
}

type stubPublisher struct{}

func (stubPublisher) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	return nil
}

type stubMailer struct{}

func (stubMailer) NotifyBookingCreated(ctx context.Context, n notification.BookingNotification) error {
	return nil
}

func TestNewNotifier(t *testing.T) {
	logger := zap.NewNop()

	n, err := NewNotifier(config.NotifyKafka, stubPublisher{}, "topic", nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &notification.KafkaNotifier{}, n)

	n, err = NewNotifier(config.NotifyEmail, nil, "", stubMailer{}, logger)
	require.NoError(t, err)
	assert.Equal(t, stubMailer{}, n)

	n, err = NewNotifier(config.NotifyLog, nil, "", nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &notification.LogNotifier{}, n)

	_, err = NewNotifier(config.NotifyKafka, nil, "topic", nil, logger)
	assert.Error(t, err)
	_, err = NewNotifier("pigeon", nil, "", nil, logger)
	assert.Error(t, err)
}
