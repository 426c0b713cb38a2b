package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-study-planner/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleDeleteAccount(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)
	HandleLoggerMiddleware(c *gin.Context)

	HandleGetDashboard(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleToggleTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleCreateNote(c *gin.Context)
	HandleGetNotes(c *gin.Context)
	HandleGetNote(c *gin.Context)
	HandleUpdateNote(c *gin.Context)
	HandleDeleteNote(c *gin.Context)
}

type handlerImpl struct {
	logger    zerolog.Logger
	auth      services.AuthService
	sessions  services.SessionService
	tasks     services.TaskService
	notes     services.NoteService
	dashboard services.DashboardService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
	taskService services.TaskService,
	noteService services.NoteService,
	dashboardService services.DashboardService,
) Handler {
	return &handlerImpl{
		logger:    logger,
		auth:      authService,
		sessions:  sessionService,
		tasks:     taskService,
		notes:     noteService,
		dashboard: dashboardService,
	}
}

// Register mounts the API on group. Everything except the public
// auth endpoints requires a valid session.
func Register(group *gin.RouterGroup, h Handler) {
	group.Use(h.HandleLoggerMiddleware)

	authGroup := group.Group("/auth")
	authGroup.POST("/register", h.HandleRegister)
	authGroup.POST("/login", h.HandleLogin)
	authGroup.POST("/refresh", h.HandleRefresh)

	protected := group.Group("", h.HandleAuthMiddleware)
	protected.POST("/auth/logout", h.HandleLogout)
	protected.DELETE("/auth/account", h.HandleDeleteAccount)

	protected.GET("/", h.HandleGetDashboard)

	tasks := protected.Group("/tasks")
	tasks.GET("", h.HandleGetTasks)
	tasks.POST("", h.HandleCreateTask)
	tasks.GET("/:id", h.HandleGetTask)
	tasks.PUT("/:id", h.HandleUpdateTask)
	tasks.DELETE("/:id", h.HandleDeleteTask)
	tasks.POST("/:id/toggle", h.HandleToggleTask)

	notes := protected.Group("/notes")
	notes.GET("", h.HandleGetNotes)
	notes.POST("", h.HandleCreateNote)
	notes.GET("/:id", h.HandleGetNote)
	notes.PUT("/:id", h.HandleUpdateNote)
	notes.DELETE("/:id", h.HandleDeleteNote)
}
