// Package httpapi exposes the public REST surface: registration and login,
// the authenticated project list CRUD, and the auxiliary lookup endpoints.
package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/dmitrijs2005/listkeeper/internal/logging"
	"github.com/dmitrijs2005/listkeeper/internal/server/cep"
	"github.com/dmitrijs2005/listkeeper/internal/server/config"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/hertz-contrib/cors"
)

// UserProvider is the slice of the user service the handlers need.
type UserProvider interface {
	Register(ctx context.Context, username string, email string, password string) (*models.User, string, error)
	Login(ctx context.Context, clientKey string, email string, password string) (*models.User, string, error)
}

// ProjectProvider is the slice of the project service the handlers need.
type ProjectProvider interface {
	Create(ctx context.Context, userID int64, title, description, priority, image string, pinned bool) (*models.Project, error)
	List(ctx context.Context, userID int64) ([]*models.Project, error)
	Update(ctx context.Context, userID int64, id int64, title, description, priority, image string, pinned bool, orderIndex *int64) error
	Delete(ctx context.Context, userID int64, id int64) error
	DeleteAll(ctx context.Context, userID int64) (int64, error)
	Reorder(ctx context.Context, userID int64, ids []int64) error
}

// AddressProvider resolves postal codes.
type AddressProvider interface {
	Lookup(ctx context.Context, code string) (*cep.Address, error)
}

// Server wires the hertz engine, middleware and handlers together.
type Server struct {
	hertz     *server.Hertz
	logger    logging.Logger
	users     UserProvider
	projects  ProjectProvider
	addresses AddressProvider
}

// New builds the HTTP server bound to cfg.EndpointAddr with all routes and
// middleware registered.
func New(cfg *config.Config, logger logging.Logger, users UserProvider, projects ProjectProvider, addresses AddressProvider) *Server {
	s := &Server{
		logger:    logger,
		users:     users,
		projects:  projects,
		addresses: addresses,
	}

	h := server.New(server.WithHostPorts(cfg.EndpointAddr))
	s.registerRoutes(h, cfg)
	s.hertz = h

	return s
}

func (s *Server) registerRoutes(h *server.Hertz, cfg *config.Config) {
	h.Use(RequestID(), corsMiddleware(cfg.CORSAllowedOrigins))

	authRequired := BearerAuth([]byte(cfg.SecretKey))

	api := h.Group("/api")

	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	api.GET("/cep/:code", s.handleCEP)
	api.GET("/quotes", s.handleQuotes)

	api.GET("/lists", authRequired, s.handleListProjects)
	api.POST("/lists", authRequired, s.handleCreateProject)
	api.PUT("/lists/reorder", authRequired, s.handleReorderProjects)
	api.PUT("/lists/:id", authRequired, s.handleUpdateProject)
	api.DELETE("/lists", authRequired, s.handleDeleteAllProjects)
	api.DELETE("/lists/:id", authRequired, s.handleDeleteProject)
}

func corsMiddleware(origins string) app.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     strings.Split(origins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// Spin starts serving and blocks until shutdown.
func (s *Server) Spin() {
	s.hertz.Spin()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hertz.Shutdown(ctx)
}
