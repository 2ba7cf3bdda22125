package register

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magelanov/travel-booking/internal/lib/apperr"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, name, surname, rawPassword string) (string, error) {
	args := m.Called(ctx, email, name, surname, rawPassword)
	return args.String(0), args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"email": "alice@example.com", "name": "Alice", "surname": "Smith", "password": "secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice@example.com", "Alice", "Smith", "secret1").
					Return("signed.jwt.token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"signed.jwt.token"`,
		},
		{
			name: "повторная регистрация занятого email",
			body: `{"email": "alice@example.com", "name": "Alice", "surname": "Smith", "password": "secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice@example.com", "Alice", "Smith", "secret1").
					Return("", apperr.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `already exists`,
		},
		{
			name:           "невалидный email",
			body:           `{"email": "not-an-email", "name": "Alice", "surname": "Smith", "password": "secret1"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `Email`,
		},
		{
			name:           "слишком короткий пароль",
			body:           `{"email": "alice@example.com", "name": "Alice", "surname": "Smith", "password": "123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `Password`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"email": `,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
