package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/akarpovich/notes-service/internal/auth/service"
	"github.com/akarpovich/notes-service/internal/common/crypto"
	commonerrors "github.com/akarpovich/notes-service/internal/common/errors"
	"github.com/akarpovich/notes-service/internal/common/jwtverify"
	"github.com/akarpovich/notes-service/internal/common/logger"
	userdomain "github.com/akarpovich/notes-service/internal/user/domain"
	userservice "github.com/akarpovich/notes-service/internal/user/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockUserService struct {
	createUserFunc  func(ctx context.Context, user userdomain.User) (userservice.UserResponse, error)
	emailExistsFunc func(ctx context.Context, email string) (bool, error)
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id uuid.UUID) (userservice.UserResponse, error)
	updateUserFunc  func(ctx context.Context, user userdomain.User) (userservice.UserResponse, error)
	deleteUserFunc  func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserService) CreateUser(ctx context.Context, user userdomain.User) (userservice.UserResponse, error) {
	return m.createUserFunc(ctx, user)
}

func (m *mockUserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFunc(ctx, email)
}

func (m *mockUserService) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	return m.findByEmailFunc(ctx, email)
}

func (m *mockUserService) FindByID(ctx context.Context, id uuid.UUID) (userservice.UserResponse, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockUserService) UpdateUser(ctx context.Context, user userdomain.User) (userservice.UserResponse, error) {
	return m.updateUserFunc(ctx, user)
}

func (m *mockUserService) DeleteUser(ctx context.Context, email string) (bool, error) {
	return m.deleteUserFunc(ctx, email)
}

type resolverFunc func(ctx context.Context, id uuid.UUID) error

func (f resolverFunc) ResolveSubject(ctx context.Context, id uuid.UUID) error {
	return f(ctx, id)
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() (uuid.UUID, error) { return uuid.New(), nil }

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	require.NoError(t, err)
	return log
}

func newMux(t *testing.T, users userservice.Service) *http.ServeMux {
	t.Helper()
	log := newTestLogger(t)
	auth := service.NewAuthService(users, crypto.NewArgon2Hasher(), uuidGenerator{}, testSecret, time.Hour, log)

	gate := jwtverify.Middleware(testSecret, resolverFunc(func(context.Context, uuid.UUID) error { return nil }), log)

	mux := http.NewServeMux()
	NewHandler(auth, log).Register(mux, gate)
	return mux
}

func doRequest(mux *http.ServeMux, method, target, body string, configure func(r *http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if configure != nil {
		configure(req)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

const registerBody = `{"firstname":"Jane","lastname":"Doe","email":"jane@example.com","password":"password123"}`

func TestRegister(t *testing.T) {
	users := &mockUserService{
		emailExistsFunc: func(ctx context.Context, email string) (bool, error) { return false, nil },
		createUserFunc: func(ctx context.Context, user userdomain.User) (userservice.UserResponse, error) {
			return userservice.ToResponse(user), nil
		},
	}

	rec := doRequest(newMux(t, users), http.MethodPost, "/api/auth/register", registerBody, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body userEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "success", body.Status)
	require.Equal(t, "jane@example.com", body.Data.User.Email)
	require.Equal(t, userdomain.DefaultRole, body.Data.User.Role)
	require.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_EmailTaken(t *testing.T) {
	users := &mockUserService{
		emailExistsFunc: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}

	rec := doRequest(newMux(t, users), http.MethodPost, "/api/auth/register", registerBody, nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), `"fail"`)
	require.Contains(t, rec.Body.String(), "already exists")
}

func TestRegister_ShortPassword(t *testing.T) {
	users := &mockUserService{
		emailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			t.Fatal("service must not run on an invalid body")
			return false, nil
		},
	}

	rec := doRequest(newMux(t, users), http.MethodPost, "/api/auth/register",
		`{"firstname":"Jane","lastname":"Doe","email":"jane@example.com","password":"short"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "password")
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	hasher := crypto.NewArgon2Hasher()
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	userID := uuid.New()

	users := &mockUserService{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{ID: userID, Email: email, PasswordHash: hash}, nil
		},
	}

	rec := doRequest(newMux(t, users), http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"password123"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "success", body.Status)
	require.NotEmpty(t, body.Token)

	claims, err := jwtverify.ParseToken(body.Token, []byte(testSecret))
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	require.Equal(t, jwtverify.CookieName, cookie.Name)
	require.Equal(t, body.Token, cookie.Value)
	require.Equal(t, "/", cookie.Path)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := &mockUserService{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{}, commonerrors.ErrUserNotFound
		},
	}

	rec := doRequest(newMux(t, users), http.MethodPost, "/api/auth/login",
		`{"email":"missing@example.com","password":"password123"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid email or password")
}

func TestLogin_WrongPassword(t *testing.T) {
	hasher := crypto.NewArgon2Hasher()
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	users := &mockUserService{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{ID: uuid.New(), Email: email, PasswordHash: hash}, nil
		},
	}

	rec := doRequest(newMux(t, users), http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"password124"}`, nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid email or password")
}

func TestLogout_ClearsCookie(t *testing.T) {
	hasher := crypto.NewArgon2Hasher()
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	userID := uuid.New()

	users := &mockUserService{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{ID: userID, Email: email, PasswordHash: hash}, nil
		},
	}

	mux := newMux(t, users)

	loginRec := doRequest(mux, http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, loginRec.Code)
	session := loginRec.Result().Cookies()[0]

	rec := doRequest(mux, http.MethodGet, "/api/auth/logout", "", func(r *http.Request) {
		r.AddCookie(session)
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"success"`)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, jwtverify.CookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}

func TestLogout_WithoutToken(t *testing.T) {
	rec := doRequest(newMux(t, &mockUserService{}), http.MethodGet, "/api/auth/logout", "", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "missing authentication token")
}
