package update

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magelanov/travel-booking/internal/http/middlewarectx"
	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, user *models.User, tripID int64, req models.DummyTrip) error {
	return m.Called(ctx, user, tripID, req).Error(0)
}

func TestUpdateTripHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	alice := &models.User{UID: "uid-alice", Email: "alice@example.com"}

	tests := []struct {
		name           string
		tripIDParam    string
		user           *models.User
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное изменение поездки",
			tripIDParam: "42",
			user:        alice,
			body:        `{"city_id": 1, "name": "Autumn break", "start_date": "2026-09-01", "end_date": "2026-09-10"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, alice, int64(42),
					models.DummyTrip{CityID: 1, Name: "Autumn break", StartDate: "2026-09-01", EndDate: "2026-09-10"}).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":200`,
		},
		{
			name:           "запрос без пользователя в контексте",
			tripIDParam:    "42",
			user:           nil,
			body:           `{"city_id": 1, "start_date": "2026-09-01", "end_date": "2026-09-10"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `authentication required`,
		},
		{
			name:           "некорректный id поездки в URL",
			tripIDParam:    "abc",
			user:           alice,
			body:           `{"city_id": 1, "start_date": "2026-09-01", "end_date": "2026-09-10"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid trip id`,
		},
		{
			name:           "запрос без дат отсекается валидацией",
			tripIDParam:    "42",
			user:           alice,
			body:           `{"city_id": 1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `EndDate`,
		},
		{
			name:        "дата в чужом формате",
			tripIDParam: "42",
			user:        alice,
			body:        `{"city_id": 1, "start_date": "2026-09-01", "end_date": "10.09.2026"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, alice, int64(42), mock.Anything).
					Return(apperr.ErrBadDateFormat)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid date format`,
		},
		{
			name:        "чужая поездка",
			tripIDParam: "42",
			user:        alice,
			body:        `{"city_id": 1, "start_date": "2026-09-01", "end_date": "2026-09-10"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, alice, int64(42), mock.Anything).
					Return(apperr.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `forbidden`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/trips/"+tt.tripIDParam,
				strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("tripID", tt.tripIDParam)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.user != nil {
				ctx = context.WithValue(ctx, middlewarectx.Principal, tt.user)
			}
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
