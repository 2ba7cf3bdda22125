package read

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magelanov/travel-booking/internal/http/middlewarectx"
	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, user *models.User, tripID int64) (*models.Trip, error) {
	args := m.Called(ctx, user, tripID)
	if res := args.Get(0); res != nil {
		return res.(*models.Trip), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadTripHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	alice := &models.User{UID: "uid-alice", Email: "alice@example.com"}

	start, _ := time.Parse("2006-01-02", "2026-06-01")
	end, _ := time.Parse("2006-01-02", "2026-06-10")

	tests := []struct {
		name           string
		tripIDParam    string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное чтение поездки",
			tripIDParam: "42",
			setupMock: func(m *MockService) {
				trip := &models.Trip{
					ID:        42,
					OwnerUID:  alice.UID,
					CityID:    1,
					CityName:  "Lisbon",
					Name:      "Summer break",
					StartDate: start,
					EndDate:   end,
				}
				m.On("Read", mock.Anything, alice, int64(42)).Return(trip, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"start_date":"2026-06-01"`,
		},
		{
			name:        "чужая поездка возвращает 403",
			tripIDParam: "42",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, alice, int64(42)).Return(nil, apperr.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `forbidden`,
		},
		{
			name:        "несуществующая поездка возвращает 404",
			tripIDParam: "999",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, alice, int64(999)).Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `not found`,
		},
		{
			name:           "некорректный id в URL",
			tripIDParam:    "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid trip id`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/trips/"+tt.tripIDParam, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("tripID", tt.tripIDParam)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.Principal, alice)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
