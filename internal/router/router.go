package router

import (
	"path/filepath"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/config"
	"github.com/taskboard-dev/taskboard/internal/handlers"
	"github.com/taskboard-dev/taskboard/internal/middleware"
	"go.uber.org/zap"
)

var pages = []string{
	"login", "register", "dashboard", "users", "tasks", "analytics",
	"settings", "reports", "profile", "calendar", "notifications",
}

func NewRouter(cfg *config.Config, h *handlers.Handler, logger *zap.SugaredLogger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID(), middleware.Logger(logger), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !slices.Contains(cfg.CORS.AllowedOrigins, "*"),
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		users := api.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.POST("", h.CreateUser)
			users.GET("/:id", h.GetUser)
			users.PUT("/:id", h.UpdateUser)
			users.DELETE("/:id", h.DeleteUser)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.ListTasks)
			tasks.POST("", h.CreateTask)
			tasks.GET("/:id", h.GetTask)
			tasks.PUT("/:id", h.UpdateTask)
			tasks.DELETE("/:id", h.DeleteTask)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", h.ListNotifications)
			notifications.POST("", h.CreateNotification)
			notifications.GET("/:id", h.GetNotification)
			notifications.PUT("/:id", h.UpdateNotification)
			notifications.DELETE("/:id", h.DeleteNotification)
		}
	}

	if cfg.Web.Dir != "" {
		registerPages(r, cfg.Web.Dir)
	}

	return r
}

// registerPages serves the static HTML pages and their assets from dir.
func registerPages(r *gin.Engine, dir string) {
	r.StaticFile("/", filepath.Join(dir, "login.html"))

	for _, page := range pages {
		r.StaticFile("/"+page, filepath.Join(dir, page+".html"))
	}

	r.Static("/static", filepath.Join(dir, "static"))
}
