package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/doctor-portal/internal/api/http/handlers"
	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/cache"
	"github.com/spec-kit/doctor-portal/internal/config"
	"github.com/spec-kit/doctor-portal/internal/events"
	"github.com/spec-kit/doctor-portal/internal/llm"
	"github.com/spec-kit/doctor-portal/internal/observability"
	"github.com/spec-kit/doctor-portal/internal/persistence"
	"github.com/spec-kit/doctor-portal/internal/repository"
	"github.com/spec-kit/doctor-portal/internal/service"
)

// ServerDependencies are the infrastructure handles the HTTP server is built from.
// Nil Postgres/Redis/Cache/LLM/Dispatcher values select the in-process fallbacks.
type ServerDependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Repos      repository.Repositories
	Postgres   *persistence.Postgres
	Redis      *persistence.Redis
	Cache      *cache.SummaryCache
	LLM        llm.Client
	Dispatcher events.Dispatcher
}

// Server is the assembled fiber app plus the services callers may need directly.
type Server struct {
	App  *fiber.App
	Auth *service.AuthService
}

// NewServer wires services, handlers and routes.
func NewServer(deps ServerDependencies) *Server {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}

	codec := auth.NewJWTCodec(cfg.Auth.SessionSecret, cfg.App.Name, cfg.Auth.SessionTTL())
	guard := auth.NewGuard(auth.PatientScope(cfg.Access.PatientScope))

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Accounts: deps.Repos.Accounts,
		Doctors:  deps.Repos.Doctors,
		Patients: deps.Repos.Patients,
		Codec:    codec,
	})
	patientService := service.NewPatientService(service.PatientDependencies{
		Patients:     deps.Repos.Patients,
		Doctors:      deps.Repos.Doctors,
		Appointments: deps.Repos.Appointments,
		Guard:        guard,
	})
	appointmentService := service.NewAppointmentService(service.AppointmentDependencies{
		Patients:     deps.Repos.Patients,
		Appointments: deps.Repos.Appointments,
		Guard:        guard,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	assistantService := service.NewAssistantService(service.AssistantDependencies{
		Patients:     deps.Repos.Patients,
		Appointments: deps.Repos.Appointments,
		Guard:        guard,
		LLM:          deps.LLM,
		Cache:        deps.Cache,
		Timeout:      cfg.LLM.Timeout(),
		Logger:       logger,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: ErrorHandler,
		BodyLimit:    1 << 20,
	})
	RegisterMiddlewares(app, logger, deps.Metrics, cfg.App.RequestTimeout(), cfg.App.CORSOrigins)

	cookie := auth.CookieOptions{Secure: cfg.Auth.CookieSecure, Domain: cfg.Auth.CookieDomain}
	RegisterRoutes(app, RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps.Postgres, deps.Redis, deps.Metrics),
		Auth:         handlers.NewAuthHandler(authService, codec.TTL(), cookie),
		Patients:     handlers.NewPatientsHandler(patientService),
		Appointments: handlers.NewAppointmentsHandler(appointmentService),
		Assistant:    handlers.NewAssistantHandler(assistantService),
		Session:      auth.NewSessionMiddleware(codec),
	})

	return &Server{App: app, Auth: authService}
}
