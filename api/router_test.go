package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/pawcare/internal/domain"
	"github.com/Domenick1991/pawcare/internal/notification"
	"github.com/Domenick1991/pawcare/internal/repository"
	"github.com/Domenick1991/pawcare/internal/service/booking"
	"github.com/Domenick1991/pawcare/internal/service/providers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	sent []notification.BookingNotification
}

func (n *recordingNotifier) NotifyBookingCreated(ctx context.Context, msg notification.BookingNotification) error {
	n.sent = append(n.sent, msg)
	return nil
}

func scenarioPayload() map[string]any {
	return map[string]any{
		"providerId":    "p1",
		"providerName":  "Alice",
		"providerEmail": "a@x.com",
		"customerName":  "Bob",
		"customerEmail": "b@x.com",
		"customerPhone": "555-1111",
		"serviceType":   "dog-walking",
		"startDate":     "2024-01-01",
		"endDate":       "2024-01-02",
		"numberOfDogs":  1,
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryBookingRepository, *recordingNotifier) {
	t.Helper()
	return newTestRouterWithConfig(t, RouterConfig{})
}

func newTestRouterWithConfig(t *testing.T, cfg RouterConfig) (*gin.Engine, *repository.MemoryBookingRepository, *recordingNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryBookingRepository()
	notifier := &recordingNotifier{}
	catalogue := providers.NewProviderService(repository.NewStaticProviderRepository([]domain.Provider{{ID: "p1", Name: "Alice"}}), nil, zap.NewNop())
	r := NewRouter(cfg, booking.NewBookingService(repo, notifier), catalogue, zap.NewNop())
	return r, repo, notifier
}

func post(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_CreateBookingScenario(t *testing.T) {
	r, repo, notifier := newTestRouter(t)

	w := post(r, "/api/bookings", scenarioPayload())

	require.Equal(t, http.StatusCreated, w.Code)
	var response struct {
		Success bool           `json:"success"`
		Booking domain.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, domain.BookingStatusPending, response.Booking.Status)
	assert.Equal(t, "guest", response.Booking.CustomerID)
	assert.NotEmpty(t, response.Booking.ID)
	_, err := time.Parse(time.RFC3339Nano, response.Booking.CreatedAt)
	assert.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, response.Booking.ID, notifier.sent[0].BookingID)

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestRouter_MissingNumberOfDogs(t *testing.T) {
	r, repo, notifier := newTestRouter(t)

	payload := scenarioPayload()
	delete(payload, "numberOfDogs")
	w := post(r, "/api/bookings", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required field: numberOfDogs"}`, w.Body.String())

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Empty(t, notifier.sent)
}

func TestRouter_FalsyValuesAreMissing(t *testing.T) {
	r, _, _ := newTestRouter(t)

	payload := scenarioPayload()
	payload["customerPhone"] = ""
	payload["numberOfDogs"] = 0
	w := post(r, "/api/bookings", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required field: customerPhone"}`, w.Body.String())
}

func TestRouter_NumberOfDogsAsString(t *testing.T) {
	r, repo, _ := newTestRouter(t)

	payload := scenarioPayload()
	payload["numberOfDogs"] = "2"
	w := post(r, "/api/bookings", payload)

	require.Equal(t, http.StatusCreated, w.Code)
	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 2, stored[0].NumberOfDogs)

	payload["numberOfDogs"] = ""
	w = post(r, "/api/bookings", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required field: numberOfDogs"}`, w.Body.String())
}

func TestRouter_StatusLifecycle(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := post(r, "/api/bookings", scenarioPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Booking domain.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	patch := func(id, body string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/bookings/"+id+"/status", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, patch(created.Booking.ID, `{"status":"accepted"}`))
	assert.Equal(t, http.StatusNotFound, patch("missing", `{"status":"accepted"}`))
	assert.Equal(t, http.StatusBadRequest, patch(created.Booking.ID, `{"status":"confirmed"}`))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings/"+created.Booking.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Booking domain.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.BookingStatusAccepted, got.Booking.Status)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings?customerId=guest", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Booking.ID)
}

func TestRouter_ProvidersAndDocs(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/providers", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Alice"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/providers/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, json.Valid(w.Body.Bytes()))
}

func TestRouter_CreateBookingWithUnusableAuthorization(t *testing.T) {
	testCases := []struct {
		name   string
		header string
	}{
		{name: "malformed token", header: "Bearer not-a-jwt"},
		{name: "basic auth", header: "Basic YWxpY2U6c2VjcmV0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, repo, _ := newTestRouterWithConfig(t, RouterConfig{JWTSecret: "router-secret"})

			body, err := json.Marshal(scenarioPayload())
			require.NoError(t, err)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", tc.header)
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusCreated, w.Code)
			var response struct {
				Booking domain.Booking `json:"booking"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, domain.GuestCustomerID, response.Booking.CustomerID)

			stored, err := repo.List(context.Background())
			require.NoError(t, err)
			require.Len(t, stored, 1)
			assert.Equal(t, response.Booking.ID, stored[0].ID)
		})
	}
}
