package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/gymlog/analytics"
	"github.com/2beens/gymlog/internal/gymlog/checkins"
	"github.com/2beens/gymlog/internal/gymlog/exercises"
	"github.com/2beens/gymlog/internal/gymlog/progress"
	"github.com/2beens/gymlog/internal/gymlog/progression"
	"github.com/2beens/gymlog/internal/gymlog/search"
	"github.com/2beens/gymlog/internal/gymlog/sequence"
	"github.com/2beens/gymlog/internal/gymlog/sessions"
	"github.com/2beens/gymlog/internal/gymlog/users"
	"github.com/2beens/gymlog/internal/gymlog/workoutlogs"
	"github.com/2beens/gymlog/internal/middleware"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

const sessionsCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config         *config.Config
	dbPool         *pgxpool.Pool
	checkoutPolicy progression.CheckoutPolicy
	completionRule progression.CompletionRule

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service
	searchClient *search.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	DBUser                  string
	DBPassword              string
	ExerciseDBApiKey        string
	OwnerName               string
	OwnerPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	checkoutPolicy, err := progression.ParseCheckoutPolicy(params.Config.CheckoutAdvancePolicy)
	if err != nil {
		return nil, err
	}
	completionRule, err := progression.ParseCompletionRule(params.Config.CompletionMatch)
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.DBUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if params.Config.RunMigrations {
		if err := db.Migrate(ctx, dbPool); err != nil {
			return nil, fmt.Errorf("migrate db: %w", err)
		}
		log.Debugln("db schema up to date")
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("gymlog", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(auth.DefaultTTL, rdb)
	go func() {
		ticker := time.NewTicker(sessionsCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authService.ScanAndClean(ctx)
			}
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymlog-service", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   15 * time.Second,
	}

	if err := ensureOwner(ctx, users.NewRepo(dbPool), params.OwnerName, params.OwnerPassword); err != nil {
		return nil, err
	}

	return &Server{
		config:         params.Config,
		dbPool:         dbPool,
		checkoutPolicy: checkoutPolicy,
		completionRule: completionRule,
		versionInfo:    params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),
		searchClient: search.NewClient(
			params.Config.ExerciseSearchURL,
			params.Config.ExerciseSearchHost,
			params.ExerciseDBApiKey,
			tracedHttpClient,
			rdb,
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

type ownerBootstrapper interface {
	EnsureOwner(ctx context.Context, name, passwordHash string) (bool, error)
}

func ensureOwner(ctx context.Context, repo ownerBootstrapper, name, password string) error {
	if name == "" || password == "" {
		log.Warnln("owner name or password not set, skipping owner bootstrap")
		return nil
	}

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash owner password: %w", err)
	}

	created, err := repo.EnsureOwner(ctx, name, passwordHash)
	if err != nil {
		return fmt.Errorf("ensure owner: %w", err)
	}
	if created {
		log.Infof("owner account [%s] created", name)
	}

	return nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymlog-router"))

	requireOwner := middleware.RequireOwner()
	ownerOnly := func(h http.HandlerFunc) http.Handler {
		return requireOwner(h)
	}

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "OPTIONS").Name("alive")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET", "OPTIONS").Name("version")

	if s.config.AssetsPath != "" {
		r.PathPrefix("/assets/").Handler(
			http.StripPrefix("/assets/", http.FileServer(http.Dir(s.config.AssetsPath))),
		).Methods("GET")
	}

	usersRepo := users.NewRepo(s.dbPool)
	sequenceRepo := sequence.NewRepo(s.dbPool)
	progressService := progress.NewService(progress.NewRepo(s.dbPool), sequenceRepo, s.metricsManager)
	sessionsService := sessions.NewService(
		sessions.NewRepo(s.dbPool),
		sequenceRepo,
		progressService,
		s.completionRule,
		s.metricsManager,
	)

	// auth
	loginHandler := users.NewLoginHandler(usersRepo, s.authService)
	authRouter := r.PathPrefix("/a").Subrouter()
	authRouter.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"auth",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	))
	authRouter.HandleFunc("/login", loginHandler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", loginHandler.HandleLogout).Methods("GET", "OPTIONS").Name("logout")
	authRouter.HandleFunc("/me", loginHandler.HandleMe).Methods("GET", "OPTIONS").Name("me")

	// users
	usersHandler := users.NewHandler(usersRepo)
	r.Handle("/users", ownerOnly(usersHandler.HandleList)).Methods("GET", "OPTIONS").Name("list-users")
	r.Handle("/users", ownerOnly(usersHandler.HandleAdd)).Methods("POST", "OPTIONS").Name("new-user")
	r.Handle("/users/{id:[0-9]+}", ownerOnly(usersHandler.HandleGet)).Methods("GET", "OPTIONS").Name("get-user")
	r.Handle("/users/{id:[0-9]+}", ownerOnly(usersHandler.HandleUpdate)).Methods("PUT", "OPTIONS").Name("update-user")
	r.Handle("/users/{id:[0-9]+}", ownerOnly(usersHandler.HandleDelete)).Methods("DELETE", "OPTIONS").Name("delete-user")

	// exercises
	exercisesHandler := exercises.NewHandler(
		exercises.NewCatalogue(exercises.NewRepo(s.dbPool)),
		exercises.NewKeywordClassifier(),
	)
	searchHandler := search.NewHandler(s.searchClient)
	r.HandleFunc("/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises/classify", exercisesHandler.HandleClassify).Methods("GET", "OPTIONS").Name("classify-exercise")
	r.HandleFunc("/exercises/assets", exercisesHandler.HandleAssets).Methods("GET", "OPTIONS").Name("exercise-assets")
	r.HandleFunc("/exercises/search", searchHandler.HandleSearch).Methods("GET", "OPTIONS").Name("search-exercises")
	r.HandleFunc("/exercises/{id:[0-9]+}", exercisesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")
	r.Handle("/exercises", ownerOnly(exercisesHandler.HandleAdd)).Methods("POST", "OPTIONS").Name("new-exercise")
	r.Handle("/exercises/{id:[0-9]+}", ownerOnly(exercisesHandler.HandleUpdate)).Methods("PUT", "OPTIONS").Name("update-exercise")
	r.Handle("/exercises/{id:[0-9]+}", ownerOnly(exercisesHandler.HandleDelete)).Methods("DELETE", "OPTIONS").Name("delete-exercise")

	// workout sequence
	sequenceHandler := sequence.NewHandler(sequenceRepo)
	r.HandleFunc("/workout-sequence", sequenceHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-sequence")
	r.Handle("/workout-sequence", ownerOnly(sequenceHandler.HandleAdd)).Methods("POST", "OPTIONS").Name("add-sequence-entry")
	r.Handle("/workout-sequence", ownerOnly(sequenceHandler.HandleRemove)).Methods("DELETE", "OPTIONS").Name("remove-sequence-entry")
	r.Handle("/workout-sequence/reorder", ownerOnly(sequenceHandler.HandleReorder)).Methods("PUT", "OPTIONS").Name("reorder-sequence")

	// progress
	progressHandler := progress.NewHandler(progressService)
	r.HandleFunc("/user-progress", progressHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-progress")
	r.HandleFunc("/user-progress", progressHandler.HandleAdvance).Methods("POST", "OPTIONS").Name("advance-progress")
	r.Handle("/user-progress/day", ownerOnly(progressHandler.HandleSetDay)).Methods("POST", "OPTIONS").Name("set-progress-day")
	r.Handle("/user-progress/reset", ownerOnly(progressHandler.HandleReset)).Methods("POST", "OPTIONS").Name("reset-progress")

	// sessions
	sessionsHandler := sessions.NewHandler(sessionsService)
	r.HandleFunc("/workout-sessions", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/workout-sessions", sessionsHandler.HandleLog).Methods("POST", "OPTIONS").Name("log-session-exercise")
	r.HandleFunc("/workout-sessions/history", sessionsHandler.HandleHistory).Methods("GET", "OPTIONS").Name("sessions-history")

	// workout logs
	logsHandler := workoutlogs.NewHandler(
		workoutlogs.NewService(workoutlogs.NewRepo(s.dbPool), sessionsService, s.metricsManager),
	)
	r.HandleFunc("/workout-logs", logsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-logs")
	r.HandleFunc("/workout-logs", logsHandler.HandleSave).Methods("POST", "OPTIONS").Name("save-log")
	r.HandleFunc("/workout-logs", logsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-log")
	r.HandleFunc("/workout-logs/{id:[0-9]+}", logsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-log")

	// check-ins
	checkInsHandler := checkins.NewHandler(
		checkins.NewService(
			checkins.NewRepo(s.dbPool),
			progressService,
			sessionsService,
			s.checkoutPolicy,
			s.metricsManager,
		),
	)
	r.HandleFunc("/check-ins", checkInsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-check-ins")
	r.HandleFunc("/check-ins", checkInsHandler.HandleCheckIn).Methods("POST", "OPTIONS").Name("check-in")
	r.HandleFunc("/check-ins/out", checkInsHandler.HandleCheckOut).Methods("POST", "OPTIONS").Name("check-out")
	r.HandleFunc("/check-ins/open", checkInsHandler.HandleOpen).Methods("GET", "OPTIONS").Name("open-check-in")

	// analytics
	analyticsHandler := analytics.NewHandler(analytics.NewAnalyzer(analytics.NewRepo(s.dbPool)))
	r.HandleFunc("/analytics/summary", analyticsHandler.HandleSummary).Methods("GET", "OPTIONS").Name("analytics-summary")
	r.HandleFunc("/analytics/progress", analyticsHandler.HandleProgress).Methods("GET", "OPTIONS").Name("analytics-progress")
	r.HandleFunc("/analytics/chart", analyticsHandler.HandleChart).Methods("GET", "OPTIONS").Name("analytics-chart")

	adminRouter := r.PathPrefix("/admin").Subrouter()
	adminRouter.Use(requireOwner)
	adminRouter.HandleFunc("/stats", analyticsHandler.HandleGymStats).Methods("GET", "OPTIONS").Name("admin-stats")
	adminRouter.HandleFunc("/users/stats", analyticsHandler.HandleUsersStats).Methods("GET", "OPTIONS").Name("admin-users-stats")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.RequestID())
	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.RequestBody(middleware.DefaultMaxBodyBytes))

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var shutdownErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("shutdown http server: %w", err))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("shutdown metrics http server: %w", err))
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("close redis client: %w", err))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return shutdownErr
}
