package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"forgehub/internal/config"
	"forgehub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uint, active bool) (*models.User, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// tokenLifetime decodes a token with the test secret and returns exp - iat.
func tokenLifetime(t *testing.T, tokenString string) time.Duration {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	return time.Duration(exp-iat) * time.Second
}

func TestSignup(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)

	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}

	app.Post("/signup", s.Signup)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Success",
			body: map[string]string{
				"fullName": "Test User",
				"email":    "test@example.com",
				"password": "Password123!",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil)
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Developer role",
			body: map[string]string{
				"fullName": "Dev User",
				"email":    "dev@example.com",
				"password": "Password123!",
				"role":     "Developer",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "dev@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Admin role rejected",
			body: map[string]string{
				"fullName": "Sneaky User",
				"email":    "sneaky@example.com",
				"password": "Password123!",
				"role":     "admin",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_ROLE",
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"fullName": "Test User",
				"email":    "exists@example.com",
				"password": "Password123!",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Short password",
			body: map[string]string{
				"fullName": "Test User",
				"email":    "short@example.com",
				"password": "abc",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedCode != "" {
				var errResp models.ErrorResponse
				_ = json.NewDecoder(resp.Body).Decode(&errResp)
				assert.Equal(t, tt.expectedCode, errResp.Code)
			}
		})
	}
}

func TestSignupTokenLifetime(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}
	app.Post("/signup", s.Signup)

	mockRepo.On("GetByEmail", mock.Anything, "fresh@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(map[string]string{
		"fullName": "Fresh User",
		"email":    "fresh@example.com",
		"password": "Password123!",
	})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, defaultTokenTTL, tokenLifetime(t, result.Token))
}

func TestLogin(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	activeUser := &models.User{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashed),
		FullName: "Test User",
		Role:     models.RoleUser,
		IsActive: true,
	}
	inactiveUser := &models.User{
		ID:       2,
		Email:    "gone@example.com",
		Password: string(hashed),
		FullName: "Gone User",
		Role:     models.RoleUser,
		IsActive: false,
	}

	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}
	app.Post("/login", s.Login)

	mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(activeUser, nil)
	mockRepo.On("GetByEmail", mock.Anything, "gone@example.com").Return(inactiveUser, nil)
	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
		expectedCode   string
		expectedTTL    time.Duration
	}{
		{
			name:           "Success",
			body:           map[string]any{"email": "test@example.com", "password": "Password123!"},
			expectedStatus: http.StatusOK,
			expectedTTL:    defaultTokenTTL,
		},
		{
			name:           "Remember me extends session",
			body:           map[string]any{"email": "test@example.com", "password": "Password123!", "rememberMe": true},
			expectedStatus: http.StatusOK,
			expectedTTL:    rememberMeTokenTTL,
		},
		{
			name:           "Empty body",
			body:           map[string]any{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "Missing password",
			body:           map[string]any{"email": "test@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "Unknown email",
			body:           map[string]any{"email": "nobody@example.com", "password": "Password123!"},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "EMAIL_NOT_FOUND",
		},
		{
			name:           "Wrong password",
			body:           map[string]any{"email": "test@example.com", "password": "wrong"},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "PASSWORD_INCORRECT",
		},
		{
			name:           "Deactivated account",
			body:           map[string]any{"email": "gone@example.com", "password": "Password123!"},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "ACCOUNT_DEACTIVATED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedCode != "" {
				var errResp models.ErrorResponse
				_ = json.NewDecoder(resp.Body).Decode(&errResp)
				assert.Equal(t, tt.expectedCode, errResp.Code)
			}
			if tt.expectedTTL != 0 {
				var result struct {
					Token string `json:"token"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
				assert.Equal(t, tt.expectedTTL, tokenLifetime(t, result.Token))
			}
		})
	}
}
