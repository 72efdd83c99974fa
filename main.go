// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"recruit-portal/config"
	"recruit-portal/controllers"
	"recruit-portal/logger"
	"recruit-portal/metrics"
	"recruit-portal/middleware"
	"recruit-portal/observability"
	"recruit-portal/ratelimit"
	"recruit-portal/services"
	"recruit-portal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLogLevel(cfg.Env)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	closeSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "recruit-portal")
	if err != nil {
		logger.Warn.Printf("Sentry init failed, continuing without it: %v", err)
	}
	defer closeSentry()

	ctx := context.Background()
	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// one counter map per process unless Redis is configured; see the
	// ratelimit package for the multi-instance caveat
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter()
	if cfg.RedisAddr != "" {
		limiter = ratelimit.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		logger.Info.Printf("Rate limiting via Redis at %s", cfg.RedisAddr)
	}

	identity := services.NewIdentityService(db, cfg.SuperAdminSRNs, cfg.AcademicYear)
	apps := services.NewApplicationService(db, limiter)
	admin := services.NewAdminService(db, limiter)
	provider := services.NewCampusOAuth(cfg.OAuthBaseURL, cfg.OAuthClientID, cfg.OAuthClientSecret, cfg.OAuthRedirectURL)

	authController := controllers.NewAuthController(identity, provider)
	studentController := controllers.NewStudentController(apps, identity)
	coController := controllers.NewCOController(apps, identity)
	adminController := controllers.NewAdminController(admin, identity)
	pageController := controllers.NewPageController(db)

	router := gin.Default()
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestMetrics())

	// Initialize session store
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("portal_session", sessionStore))

	router.GET("/health", pageController.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/", pageController.Root)

	// Auth routes; the callback is exempt from the per-IP limit so a slow
	// provider roundtrip cannot lock a student out of their own login
	authLimited := router.Group("/auth", middleware.AuthRateLimit(limiter))
	authLimited.GET("/login", authController.Login)
	authLimited.GET("/logout", authController.Logout)
	router.GET("/auth/callback", authController.Callback)

	// Public reads
	router.GET("/api/domains", studentController.ListDomains)
	router.GET("/api/settings", studentController.Settings)

	// Student routes
	authed := router.Group("/api", middleware.AuthRequired)
	{
		authed.GET("/applications", studentController.MyApplications)
		authed.POST("/applications", studentController.Apply)
		authed.DELETE("/applications/:domainID", studentController.Withdraw)
	}

	// Coordinator routes
	co := router.Group("/api/co", middleware.AuthRequired, middleware.CoordinatorRequired())
	{
		co.GET("/applicants", coController.Applicants)
		co.GET("/summary", coController.Summary)
		co.POST("/applications/:id/score", coController.Score)
		co.POST("/applications/:id/interview", coController.InterviewDone)
		co.POST("/applications/:id/decision", coController.Decide)
	}

	// Super-admin routes
	adm := router.Group("/api/admin", middleware.AuthRequired, middleware.SuperAdminRequired())
	{
		adm.POST("/freeze", adminController.Freeze)
		adm.POST("/unfreeze", adminController.Unfreeze)
		adm.POST("/publish", adminController.Publish)
		adm.GET("/overview", adminController.Overview)
		adm.GET("/multi-domain", adminController.MultiDomain)
		adm.PUT("/domains/:id/whatsapp", adminController.UpdateWhatsAppLink)
		adm.GET("/domains/:id/whatsapp-qr", adminController.WhatsAppQR)
		adm.GET("/export.csv", adminController.ExportCSV)
		adm.GET("/export.xlsx", adminController.ExportXLSX)
	}

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	logger.Info.Printf("Listening on %s (env=%s)", addr, cfg.Env)
	if err := router.Run(addr); err != nil {
		logger.Error.Printf("Server exited: %v", err)
		os.Exit(1)
	}
}
