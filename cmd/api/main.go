package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/linkpage/linkpage-backend/internal/audit"
	"github.com/linkpage/linkpage-backend/internal/config"
	"github.com/linkpage/linkpage-backend/internal/handler"
	"github.com/linkpage/linkpage-backend/internal/middleware"
	"github.com/linkpage/linkpage-backend/internal/migration"
	"github.com/linkpage/linkpage-backend/internal/repository"
	"github.com/linkpage/linkpage-backend/internal/routes"
	"github.com/linkpage/linkpage-backend/internal/service"
	pkgcache "github.com/linkpage/linkpage-backend/pkg/cache"
	"github.com/linkpage/linkpage-backend/pkg/jwt"
	pkglogger "github.com/linkpage/linkpage-backend/pkg/logger"
	pkgredis "github.com/linkpage/linkpage-backend/pkg/redis"
	pkgstorage "github.com/linkpage/linkpage-backend/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Linkpage Backend API
// @version         1.0
// @description     Link-in-bio profile hosting and analytics backend
//
// @license.name    MIT
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		middleware.SetDBConnectionsActive(float64(sqlDB.Stats().OpenConnections))
	}

	// Redis
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
		pkglogger.Info("Cache service initialized")
	}

	// S3-compatible storage
	var s3Client *pkgstorage.S3Client
	if cfg.Storage.Enabled && cfg.Storage.Bucket != "" {
		var s3Err error
		s3Client, s3Err = pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if s3Err != nil {
			pkglogger.Warn("S3 storage init failed: %v (continuing without S3)", s3Err)
			s3Client = nil
		} else {
			pkglogger.Info("Connected to S3 storage")
		}
	}

	// ClickHouse audit sink for raw event trails
	var auditSink audit.Sink
	if cfg.Audit.Enabled {
		sink, chErr := audit.NewClickHouseSink(audit.Config{
			Host:     cfg.Audit.Host,
			Port:     cfg.Audit.Port,
			Database: cfg.Audit.Database,
			User:     cfg.Audit.User,
			Password: cfg.Audit.Password,
		})
		if chErr != nil {
			pkglogger.Warn("ClickHouse init failed: %v (continuing without audit sink)", chErr)
		} else {
			auditSink = sink
			defer sink.Close()
			pkglogger.Info("Connected to ClickHouse audit sink")
		}
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS
	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	corsConfig := cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "x-session-id"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	// Middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig(cfg.RateLimit.RequestsPerMinute)))
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "linkpage-backend",
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories
	profileRepo := repository.NewProfileRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	productRepo := repository.NewProductRepository(db)
	socialRepo := repository.NewSocialRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	profileService := service.NewProfileService(profileRepo, linkRepo, productRepo, socialRepo, cacheService)
	linkService := service.NewLinkService(profileService, linkRepo)
	productService := service.NewProductService(profileService, productRepo)
	socialService := service.NewSocialService(profileService, socialRepo)
	analyticsService := service.NewAnalyticsService(
		profileRepo,
		linkRepo,
		productRepo,
		statsRepo,
		auditSink,
		cfg.Analytics.CountUntargetedClicks,
	)

	// Handlers
	h := &routes.Handlers{
		Profile:   handler.NewProfileHandler(profileService),
		Link:      handler.NewLinkHandler(linkService),
		Product:   handler.NewProductHandler(productService),
		Social:    handler.NewSocialHandler(socialService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
	}
	if s3Client != nil {
		h.Upload = handler.NewUploadHandler(s3Client, cfg.Storage.MaxUploadSize)
	}

	routes.Setup(router, h, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.Info("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	// Day bucketing is done in UTC, keep the session timezone aligned
	mysqlCfg.Params["time_zone"] = "'+00:00'"

	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
		// repositories match on gorm.ErrDuplicatedKey to report slug conflicts
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
