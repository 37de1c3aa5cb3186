package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"staffhub/internal/config"
	"staffhub/internal/database"
	"staffhub/internal/domain"
	"staffhub/internal/middleware"
	"staffhub/internal/modules/attendance"
	"staffhub/internal/modules/auth"
	"staffhub/internal/modules/branch"
	"staffhub/internal/modules/department"
	"staffhub/internal/modules/employee"
	"staffhub/internal/modules/leave"
	"staffhub/internal/modules/project"
	"staffhub/internal/notification"
	jwtsvc "staffhub/internal/pkg/jwt"
	"staffhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	attemptRepo := repository.NewLoginAttemptRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	issuer := jwtsvc.NewIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTTL, cfg.RefreshTTL)

	var mailer auth.Mailer = notification.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = notification.NewSMTPMailer(notification.SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			Username:    cfg.SMTPUsername,
			Password:    cfg.SMTPPassword,
			FromAddress: cfg.SMTPFrom,
		})
	}

	authService := auth.NewService(
		userRepo,
		employeeRepo,
		auth.NewRefreshTokenStore(refreshRepo),
		auth.NewPasswordResetStore(resetRepo, cfg.ResetTokenTTL),
		auth.NewLockoutTracker(attemptRepo, userRepo),
		auth.NewRateLimiter(auth.NewMemoryCounterStore()),
		issuer,
		mailer,
		cfg.BaseURL,
	)

	cookies := auth.CookieConfig{
		Secure:      cfg.CookieSecure,
		SameSite:    cfg.SameSite(),
		RefreshPath: cfg.RefreshCookiePath,
		AccessTTL:   int(cfg.AccessTTL.Seconds()),
		RefreshTTL:  int(cfg.RefreshTTL.Seconds()),
	}
	authHandler := auth.NewHandler(authService, cookies)

	guard := middleware.NewSessionGuard(issuer, authService, middleware.SessionConfig{
		PublicPrefixes: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/register",
			"/api/v1/auth/refresh",
			"/api/v1/auth/logout",
			"/api/v1/auth/forgot-password",
			"/api/v1/auth/reset-password",
			"/healthz",
		},
		RoleAccess: map[string][]domain.UserRole{
			"/api/v1/admin":        {domain.RoleAdmin},
			"/api/v1/employees":    {domain.RoleAdmin, domain.RoleHR},
			"/api/v1/branches":     {domain.RoleAdmin, domain.RoleHR},
			"/api/v1/departments":  {domain.RoleAdmin, domain.RoleHR},
			"/api/v1/allemployees": {domain.RoleAdmin, domain.RoleHR, domain.RoleEmployee},
			"/api/v1/projects":     {domain.RoleAdmin, domain.RoleHR, domain.RoleEmployee},
			"/api/v1/attendance":   {domain.RoleAdmin, domain.RoleHR, domain.RoleEmployee},
			"/api/v1/leaves":       {domain.RoleAdmin, domain.RoleHR, domain.RoleEmployee},
			"/api/v1/profile":      {domain.RoleAdmin, domain.RoleHR, domain.RoleEmployee},
			"/api/v1/dashboard":    {domain.RoleAdmin, domain.RoleHR, domain.RoleEmployee},
		},
		LoginPath:        "/login",
		UnauthorizedPath: "/unauthorized",
		Cookies:          cookies,
	})

	employeeHandler := employee.NewHandler(employee.NewService(employeeRepo, branchRepo, departmentRepo, userRepo))
	branchHandler := branch.NewHandler(branch.NewService(branchRepo))
	departmentHandler := department.NewHandler(department.NewService(departmentRepo))
	leaveHandler := leave.NewHandler(leave.NewService(leaveRepo))
	attendanceHandler := attendance.NewHandler(attendance.NewService(attendanceRepo))
	projectHandler := project.NewHandler(project.NewService(projectRepo, employeeRepo))

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())
	r.Use(guard.Handler())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		authHandler.RegisterProtectedRoutes(v1)

		employeeHandler.RegisterRoutes(v1)
		branchHandler.RegisterRoutes(v1)
		departmentHandler.RegisterRoutes(v1)
		leaveHandler.RegisterRoutes(v1)
		attendanceHandler.RegisterRoutes(v1)
		projectHandler.RegisterRoutes(v1)
	}

	log.Printf("listening on %s (env=%s)", cfg.ListenAddr, cfg.AppEnv)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
