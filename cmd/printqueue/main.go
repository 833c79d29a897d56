package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/campusprint/printqueue/internal/events"
	"github.com/campusprint/printqueue/internal/files"
	"github.com/campusprint/printqueue/internal/handlers"
	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/middlewares"
	"github.com/campusprint/printqueue/internal/repositories"
	"github.com/campusprint/printqueue/internal/services"
	"github.com/campusprint/printqueue/internal/sessions"

	_ "github.com/campusprint/printqueue/docs"
	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title printqueue API
// @version 1.0.0
// @description Campus print-job submission and queue management portal
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaBrokers, kafkaTopic,
		sessionSecret, sessionTTLSecond,
		uploadDir, uploadMaxBytes,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaBrokers, kafkaTopic,
		sessionSecret, sessionTTLSecond,
		uploadDir, uploadMaxBytes,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, session, and upload configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	kafkaBrokers, kafkaTopic string,
	sessionSecret string, sessionTTLSecond int,
	uploadDir string, uploadMaxBytes int64,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "printqueue")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")

	// Kafka config; empty brokers disables the event stream
	kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "printqueue.jobs")

	// Session config
	sessionSecret = getEnv("SESSION_SECRET", "my_super_secret_key")
	if sessionTTLSecond, err = strconv.Atoi(getEnv("SESSION_TTL_SECOND", "86400")); err != nil {
		return
	}

	// Upload config
	uploadDir = getEnv("UPLOAD_DIR", "uploads")
	if uploadMaxBytes, err = strconv.ParseInt(getEnv("UPLOAD_MAX_BYTES", "10485760"), 10, 64); err != nil {
		return
	}

	return
}

// run initializes the logger, storage, session store, event publisher, and
// HTTP server. It sets up routes, applies middleware, and handles graceful
// shutdown. When Postgres or Redis are unreachable the corresponding
// in-memory fallback is selected once, here, and never re-checked.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	kafkaBrokers, kafkaTopic string,
	sessionSecret string, sessionTTLSecond int,
	uploadDir string, uploadMaxBytes int64,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	log := logger.Log
	defer log.Sync()
	log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL; fall back to the in-memory store if unreachable
	var (
		userReader services.UserReader
		userWriter services.UserWriter
		jobReader  services.JobReader
		jobWriter  services.JobWriter
	)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	log.Infof("Connecting to PostgreSQL: %s:%d/%s", pgHost, pgPort, pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		log.Warnw("PostgreSQL unreachable, using in-memory storage; data will not persist", "error", err)
		mem := repositories.NewMemoryStorage()
		userReader = mem.Users()
		userWriter = mem.Users()
		jobReader = mem.PrintJobs()
		jobWriter = mem.PrintJobs()
	} else {
		defer db.Close()
		db.SetMaxOpenConns(pgMaxOpenConns)
		db.SetMaxIdleConns(pgMaxIdleConns)
		if err := repositories.EnsureSchema(ctx, db); err != nil {
			log.Errorw("schema bootstrap failed", "error", err)
			return err
		}
		userReader = repositories.NewUserReadRepository(db)
		userWriter = repositories.NewUserWriteRepository(db)
		jobReader = repositories.NewPrintJobReadRepository(db)
		jobWriter = repositories.NewPrintJobWriteRepository(db)
	}

	// Connect to Redis; fall back to the in-memory session registry
	sessionTTL := time.Duration(sessionTTLSecond) * time.Second

	var registry interface {
		services.SessionRegistry
		middlewares.SessionChecker
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warnw("Redis unreachable, using in-memory sessions; sessions will not survive a restart", "error", err)
		registry = sessions.NewMemoryStore(sessionTTL)
	} else {
		defer rdb.Close()
		registry = sessions.NewRedisStore(rdb, sessionTTL)
	}

	// Event publisher
	var publisher services.EventPublisher = events.NopPublisher{}
	if kafkaBrokers != "" {
		kp := events.NewKafkaPublisher(kafkaBrokers, kafkaTopic)
		defer kp.Close()
		publisher = kp
		log.Infof("Publishing job events to Kafka topic %s", kafkaTopic)
	}

	// Upload blob store
	blobStore, err := files.NewDiskStore(uploadDir)
	if err != nil {
		log.Errorw("failed to prepare upload dir", "error", err)
		return err
	}

	// Initialize session tokens
	tokens := sessions.NewTokens(sessionSecret, sessionTTL)

	// Initialize services
	authService := services.NewAuthService(userReader, userWriter, tokens, registry)
	jobService := services.NewJobService(jobReader, jobWriter, publisher)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService, sessionTTL)
	loginHandler := handlers.NewLoginHandler(authService, sessionTTL)
	logoutHandler := handlers.NewLogoutHandler(authService)
	currentUserHandler := handlers.NewCurrentUserHandler(authService)
	jobsListHandler := handlers.NewJobsListHandler(jobService)
	jobSubmitHandler := handlers.NewJobSubmitHandler(jobService, blobStore, uploadMaxBytes)
	jobDetailHandler := handlers.NewJobDetailHandler(jobService)
	jobStatusHandler := handlers.NewJobStatusHandler(jobService)
	profileHandler := handlers.NewProfileHandler(authService)
	passwordHandler := handlers.NewPasswordHandler(authService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))

	// Public routes
	r.Post("/api/register", registerHandler)
	r.Post("/api/login", loginHandler)

	// Protected routes behind the session middleware
	authMiddleware := middlewares.AuthMiddleware(tokens, registry)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/logout", logoutHandler)
		r.Get("/api/user", currentUserHandler)
		r.Get("/api/jobs", jobsListHandler)
		r.Post("/api/jobs", jobSubmitHandler)
		r.Get("/api/jobs/{jobID}", jobDetailHandler)
		r.Patch("/api/jobs/{jobID}/status", jobStatusHandler)
		r.Patch("/api/user/profile", profileHandler)
		r.Patch("/api/user/password", passwordHandler)

		// Stored documents, fetched by opaque handle. Any authenticated
		// holder of a handle can read the blob.
		r.Handle("/uploads/*", http.StripPrefix("/uploads/",
			http.FileServer(http.Dir(blobStore.Dir()))))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
