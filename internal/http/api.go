package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"movie-library/internal/auth"
	"movie-library/internal/service"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the HTTP layer dispatches to.
type Deps struct {
	Users     service.UserDirectory
	Auth      service.Authenticator
	Movies    service.MovieCatalog
	Favorites service.FavoritesManager
	Hasher    auth.PasswordHasher
	DB        Pinger
	Logger    logrus.FieldLogger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserDirectory
	auth      service.Authenticator
	movies    service.MovieCatalog
	favorites service.FavoritesManager
	hasher    auth.PasswordHasher
	db        Pinger
	logger    logrus.FieldLogger
}

func NewHandler(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		users:     deps.Users,
		auth:      deps.Auth,
		movies:    deps.Movies,
		favorites: deps.Favorites,
		hasher:    deps.Hasher,
		db:        deps.DB,
		logger:    logger.WithField("component", "http"),
	}
}

// RegisterRoutes mounts every endpoint under prefix.
func (h *Handler) RegisterRoutes(router *gin.Engine, prefix string) {
	router.Use(requestLogger(h.logger), corsMiddleware())

	api := router.Group(prefix)

	health := api.Group("/health_check")
	{
		health.GET("/ping_application", h.pingApplication)
		health.GET("/ping_database", h.pingDatabase)
	}

	user := api.Group("/user")
	{
		user.POST("/registration", h.register)
		user.POST("/authentication", h.authenticate)
		user.GET("/me", h.requireUser(), h.me)
		user.PUT("/edit", h.requireUser(), h.editUser)
		user.DELETE("/takeout", h.requireUser(), h.takeout)
	}

	movie := api.Group("/movie", h.requireUser())
	{
		movie.GET("/", h.listMovies)
		movie.POST("/", h.createMovie)
		movie.GET("/:id", h.getMovie)
		movie.PUT("/edit/:id", h.editMovie)
		movie.DELETE("/:id", h.deleteMovie)
		movie.PUT("/:id/poster", h.uploadPoster)
		movie.GET("/:id/poster", h.posterRedirect)
	}

	favorite := api.Group("/favorite", h.requireUser())
	{
		favorite.GET("/", h.listFavorites)
		favorite.POST("/:movie_id", h.addFavorite)
		favorite.DELETE("/:movie_id", h.removeFavorite)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, WWW-Authenticate")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) pingApplication(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Application works!"})
}

func (h *Handler) pingDatabase(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("database ping failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database does not work."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database works!"})
}
