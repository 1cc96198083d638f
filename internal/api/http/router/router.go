package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/dtroode/contacts-server/internal/api/http/handler"
	"github.com/dtroode/contacts-server/internal/api/http/middleware"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

const appName = "contacts-server"

// Config holds HTTP level limits.
type Config struct {
	// BodyLimit is the maximum request body in bytes. Zero keeps the fiber default.
	BodyLimit int
	// MaxAvatarSize is the maximum size of an uploaded avatar in bytes.
	MaxAvatarSize int64
	// HealthChecks are run by GET /healthz.
	HealthChecks map[string]handler.Check
}

// Router wires handlers and middleware into a fiber application.
type Router struct {
	config         Config
	authService    handler.AuthService
	contactService handler.ContactService
	resolver       middleware.SessionResolver
	meLimiter      middleware.RateLimiter
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
//
// Parameters:
//   - config: HTTP limits and health checks
//   - authService: account lifecycle operations
//   - contactService: owner scoped contact operations
//   - resolver: bearer token to user resolution
//   - meLimiter: fixed window limiter guarding GET /me
//   - contextManager: stores the resolved user on the request context
//   - logger: the logger for request logging
func New(
	config Config,
	authService handler.AuthService,
	contactService handler.ContactService,
	resolver middleware.SessionResolver,
	meLimiter middleware.RateLimiter,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		config:         config,
		authService:    authService,
		contactService: contactService,
		resolver:       resolver,
		meLimiter:      meLimiter,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the fiber application with every route and middleware.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		BodyLimit:             r.config.BodyLimit,
		Immutable:             true,
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler(r.logger),
	})

	logging := middleware.NewLogging(r.logger)
	app.Use(
		requestid.New(),
		logging.Handle,
		recover.New(),
		cors.New(),
	)

	health := handler.NewHealth(r.config.HealthChecks, r.logger)
	app.Get("/healthz", health.Handle)

	authenticate := middleware.NewAuthenticate(r.resolver, r.contextManager, r.logger)
	r.registerAuthRoutes(app, authenticate)
	r.registerContactRoutes(app, authenticate)

	return app
}

func (r *Router) registerAuthRoutes(app *fiber.App, authenticate *middleware.Authenticate) {
	authHandler := handler.NewAuth(r.authService, r.logger)
	userHandler := handler.NewUser(r.authService, r.contextManager, r.config.MaxAvatarSize, r.logger)
	meLimit := middleware.NewRateLimit(r.meLimiter, "me", r.logger)

	app.Post("/register", authHandler.Register)
	app.Get("/verify/:token", authHandler.Verify)
	app.Post("/token", authHandler.Token)
	app.Post("/forgot-password", authHandler.ForgotPassword)
	app.Post("/reset-password/:token", authHandler.ResetPassword)

	app.Get("/me", meLimit.Handle, authenticate.Handle, userHandler.Me)
	app.Put("/users/avatar",
		authenticate.Handle,
		middleware.RequireRole(model.RoleAdmin, "Only admin users can change their avatar", r.contextManager),
		userHandler.UpdateAvatar,
	)
}

func (r *Router) registerContactRoutes(app *fiber.App, authenticate *middleware.Authenticate) {
	contactHandler := handler.NewContact(r.contactService, r.contextManager, r.logger)

	contacts := app.Group("/contacts", authenticate.Handle)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/", contactHandler.List)
	contacts.Get("/:id", contactHandler.Get)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)
}
