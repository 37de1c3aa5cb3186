package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staffhub/internal/database"
	"staffhub/internal/domain"
	"staffhub/internal/middleware"
	"staffhub/internal/modules/auth"
	"staffhub/internal/modules/employee"
	jwtsvc "staffhub/internal/pkg/jwt"
	"staffhub/internal/repository"
)

type testSuite struct {
	router *gin.Engine
	db     *gorm.DB
	mailer *captureMailer
}

// captureMailer records the reset link instead of sending mail.
type captureMailer struct {
	lastTo  string
	lastURL string
}

func (m *captureMailer) SendPasswordResetEmail(to, resetURL string) error {
	m.lastTo = to
	m.lastURL = resetURL
	return nil
}

func setupSuite(t *testing.T) *testSuite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "failed to connect to test database")

	require.NoError(t, db.AutoMigrate(
		&domain.Branch{},
		&domain.Department{},
		&domain.Employee{},
		&domain.User{},
		&domain.RefreshToken{},
		&domain.LoginAttempt{},
		&domain.PasswordResetToken{},
	))

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	attemptRepo := repository.NewLoginAttemptRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)

	issuer := jwtsvc.NewIssuer("e2e-access-secret", "e2e-refresh-secret", 15*time.Minute, 30*24*time.Hour)
	mailer := &captureMailer{}

	authService := auth.NewService(
		userRepo,
		employeeRepo,
		auth.NewRefreshTokenStore(refreshRepo),
		auth.NewPasswordResetStore(resetRepo, 15*time.Minute),
		auth.NewLockoutTracker(attemptRepo, userRepo),
		auth.NewRateLimiter(auth.NewMemoryCounterStore()),
		issuer,
		mailer,
		"http://localhost:3000",
	)
	authService.Sleep = func(time.Duration) {}

	cookies := auth.CookieConfig{
		SameSite:    http.SameSiteStrictMode,
		RefreshPath: "/api/v1/auth/refresh",
		AccessTTL:   900,
		RefreshTTL:  2592000,
	}
	authHandler := auth.NewHandler(authService, cookies)

	guard := middleware.NewSessionGuard(issuer, authService, middleware.SessionConfig{
		PublicPrefixes: []string{"/api/v1/auth/login", "/api/v1/auth/register",
			"/api/v1/auth/refresh", "/api/v1/auth/logout",
			"/api/v1/auth/forgot-password", "/api/v1/auth/reset-password", "/healthz"},
		RoleAccess: map[string][]domain.UserRole{
			"/api/v1/employees":    {domain.RoleAdmin, domain.RoleHR},
			"/api/v1/allemployees": {domain.RoleAdmin, domain.RoleHR, domain.RoleEmployee},
		},
		LoginPath:        "/login",
		UnauthorizedPath: "/unauthorized",
		Cookies:          cookies,
	})

	employeeHandler := employee.NewHandler(employee.NewService(employeeRepo, branchRepo, departmentRepo, userRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(guard.Handler())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)
	authHandler.RegisterProtectedRoutes(v1)
	employeeHandler.RegisterRoutes(v1)

	return &testSuite{router: r, db: db, mailer: mailer}
}

func (s *testSuite) seedUser(t *testing.T, email, password string, role domain.UserRole) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Email: email, PasswordHash: string(hash), Role: role}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func (s *testSuite) request(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func cookieByName(res *http.Response, name string) *http.Cookie {
	for _, ck := range res.Cookies() {
		if ck.Name == name && ck.Value != "" {
			return ck
		}
	}
	return nil
}

func TestLoginRefreshRotationAndReuse(t *testing.T) {
	s := setupSuite(t)
	s.seedUser(t, "user@example.com", "password123", domain.RoleEmployee)

	// Login issues both cookies.
	w := s.request(t, "POST", "/api/v1/auth/login",
		gin.H{"email": "user@example.com", "password": "password123"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	access := cookieByName(w.Result(), "access_token")
	refresh := cookieByName(w.Result(), "refresh_token")
	require.NotNil(t, access)
	require.NotNil(t, refresh)

	// Access cookie opens a protected route.
	w = s.request(t, "GET", "/api/v1/auth/me", nil, []*http.Cookie{access})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user@example.com")

	// Rotation returns a different refresh token.
	w = s.request(t, "POST", "/api/v1/auth/refresh", nil, []*http.Cookie{refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rotated := cookieByName(w.Result(), "refresh_token")
	require.NotNil(t, rotated)
	assert.NotEqual(t, refresh.Value, rotated.Value)

	// Replaying the pre-rotation token is reuse, not a generic failure.
	w = s.request(t, "POST", "/api/v1/auth/refresh", nil, []*http.Cookie{refresh})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REUSE_DETECTED")
	for _, ck := range w.Result().Cookies() {
		assert.Empty(t, ck.Value)
	}

	// The rotated token is still live.
	w = s.request(t, "POST", "/api/v1/auth/refresh", nil, []*http.Cookie{rotated})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLockoutAfterRepeatedFailures(t *testing.T) {
	s := setupSuite(t)
	s.seedUser(t, "victim@example.com", "correct-password", domain.RoleEmployee)

	for i := 0; i < 5; i++ {
		w := s.request(t, "POST", "/api/v1/auth/login",
			gin.H{"email": "victim@example.com", "password": fmt.Sprintf("wrong-%d", i)}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// Correct credentials are refused while the lock holds.
	w := s.request(t, "POST", "/api/v1/auth/login",
		gin.H{"email": "victim@example.com", "password": "correct-password"}, nil)
	assert.Equal(t, http.StatusLocked, w.Code)
	assert.Contains(t, w.Body.String(), "ACCOUNT_LOCKED")
}

func TestRoleAccessOnProtectedPrefixes(t *testing.T) {
	s := setupSuite(t)
	s.seedUser(t, "admin@example.com", "admin-pass", domain.RoleAdmin)
	s.seedUser(t, "emp@example.com", "emp-pass", domain.RoleEmployee)

	login := func(email, password string) *http.Cookie {
		w := s.request(t, "POST", "/api/v1/auth/login",
			gin.H{"email": email, "password": password}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return cookieByName(w.Result(), "access_token")
	}

	adminCookie := login("admin@example.com", "admin-pass")
	empCookie := login("emp@example.com", "emp-pass")

	// Management prefix is ADMIN/HR only.
	w := s.request(t, "GET", "/api/v1/employees", nil, []*http.Cookie{empCookie})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(t, "GET", "/api/v1/employees", nil, []*http.Cookie{adminCookie})
	assert.Equal(t, http.StatusOK, w.Code)

	// The shared directory is open to employees.
	w = s.request(t, "GET", "/api/v1/allemployees", nil, []*http.Cookie{empCookie})
	assert.Equal(t, http.StatusOK, w.Code)

	// No session at all on an API path is a JSON 401.
	w = s.request(t, "GET", "/api/v1/employees", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	s := setupSuite(t)
	user := s.seedUser(t, "reset@example.com", "old-password", domain.RoleEmployee)

	// Unknown email gets the identical padded answer.
	w := s.request(t, "POST", "/api/v1/auth/forgot-password",
		gin.H{"email": "ghost@example.com"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.mailer.lastURL)

	w = s.request(t, "POST", "/api/v1/auth/forgot-password",
		gin.H{"email": "reset@example.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, s.mailer.lastURL)
	assert.Equal(t, "reset@example.com", s.mailer.lastTo)

	link, err := url.Parse(s.mailer.lastURL)
	require.NoError(t, err)
	token := link.Query().Get("token")
	uid, err := strconv.ParseInt(link.Query().Get("uid"), 10, 64)
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)

	w = s.request(t, "POST", "/api/v1/auth/reset-password",
		gin.H{"id": uid, "token": token, "new_password": "brand-new-pass"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The token is single use.
	w = s.request(t, "POST", "/api/v1/auth/reset-password",
		gin.H{"id": uid, "token": token, "new_password": "another-pass"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Old password dead, new password works.
	w = s.request(t, "POST", "/api/v1/auth/login",
		gin.H{"email": "reset@example.com", "password": "old-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.request(t, "POST", "/api/v1/auth/login",
		gin.H{"email": "reset@example.com", "password": "brand-new-pass"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginLogout(t *testing.T) {
	s := setupSuite(t)

	w := s.request(t, "POST", "/api/v1/auth/register",
		gin.H{"email": "fresh@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, "POST", "/api/v1/auth/login",
		gin.H{"email": "fresh@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	refresh := cookieByName(w.Result(), "refresh_token")
	require.NotNil(t, refresh)

	w = s.request(t, "POST", "/api/v1/auth/logout", nil, []*http.Cookie{refresh})
	assert.Equal(t, http.StatusOK, w.Code)

	// The revoked session cannot rotate.
	w = s.request(t, "POST", "/api/v1/auth/refresh", nil, []*http.Cookie{refresh})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
