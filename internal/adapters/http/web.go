package web

import (
	"context"
	"net/http"
	"time"

	"fittrack/internal/adapters/http/middleware"
	assignmentStore "fittrack/internal/adapters/storage/assignment"
	programStore "fittrack/internal/adapters/storage/program"
	trainerCVStore "fittrack/internal/adapters/storage/trainercv"
	userStore "fittrack/internal/adapters/storage/user"
	workoutStore "fittrack/internal/adapters/storage/workout"
)

// Stores holds all storage dependencies.
type Stores struct {
	UserStore       userStore.Store
	WorkoutStore    workoutStore.Store
	ProgramStore    programStore.Store
	AssignmentStore assignmentStore.Store
	TrainerCVStore  trainerCVStore.Store
}

// Pinger reports database liveness for /healthz.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options configures the middleware around the mux.
type Options struct {
	CSRFKey        []byte
	TrustedOrigins []string
	SecureCookies  bool
	Sessions       *middleware.Sessions
	Tokens         *middleware.TokenIssuer
	RateLimit      int
	SlowRequest    time.Duration
	DB             Pinger
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session manager and token issuer (set by NewMux)
var (
	sessions *middleware.Sessions
	tokens   *middleware.TokenIssuer
)

// Global database handle for the health check (set by NewMux)
var db Pinger

// NewMux wires HTTP handlers for the app.
// Middleware order, outermost first: Timing, RateLimit, Auth, CSRF, SecurityHeaders.
func NewMux(s *Stores, opts Options) http.Handler {
	stores = s
	sessions = opts.Sessions
	tokens = opts.Tokens
	db = opts.DB

	mux := http.NewServeMux()
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(opts.RateLimit, time.Second)

	return middleware.Chain(mux,
		middleware.Timing(opts.SlowRequest),
		middleware.RateLimit(limiter),
		middleware.Auth(sessions, tokens),
		middleware.CSRF(opts.CSRFKey, opts.SecureCookies, opts.TrustedOrigins),
		middleware.SecurityHeaders,
	)
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", handleHealthz)

	mux.HandleFunc("POST /api/register", handleRegister)
	mux.HandleFunc("GET /login", handleLoginForm)
	mux.HandleFunc("POST /login", handleLogin)
	mux.HandleFunc("POST /logout", handleLogout)
	mux.HandleFunc("POST /api/auth/token", handleIssueToken)
	mux.HandleFunc("GET /api/me", handleMe)

	mux.HandleFunc("GET /api/workouts", handleListWorkouts)
	mux.HandleFunc("POST /api/workouts", handleCreateWorkout)
	mux.HandleFunc("PUT /api/workouts/{id}", handleUpdateWorkout)
	mux.HandleFunc("DELETE /api/workouts/{id}", handleDeleteWorkout)

	mux.HandleFunc("GET /api/programs", handleProgramCatalog)
	mux.HandleFunc("POST /api/programs", handleCreateProgram)
	mux.HandleFunc("GET /api/programs/mine", handleMyPrograms)
	mux.HandleFunc("PUT /api/programs/{id}", handleUpdateProgram)
	mux.HandleFunc("DELETE /api/programs/{id}", handleDeleteProgram)
	mux.HandleFunc("POST /api/programs/{id}/assign", handleAssignProgram)

	mux.HandleFunc("GET /api/trainer/cv", handleMyTrainerCV)
	mux.HandleFunc("PUT /api/trainer/cv", handleUpsertTrainerCV)
	mux.HandleFunc("GET /api/trainers", handleTrainerDirectory)
	mux.HandleFunc("GET /api/trainers/{id}/cv", handleTrainerCV)

	mux.HandleFunc("GET /api/dashboard", handleDashboard)
	mux.HandleFunc("GET /api/stats/user", handleUserStats)
	mux.HandleFunc("GET /api/stats/trainer", handleTrainerStats)
}
