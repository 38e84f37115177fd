package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"slot-booking-manager/internal/handler/api"
	reqdto "slot-booking-manager/internal/handler/dto/request"
	"slot-booking-manager/internal/handler/middleware"
	"slot-booking-manager/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	slotHandler *api.SlotHandler,
	frontendHandler *api.FrontendHandler,
	adminMiddleware *middleware.AdminMiddleware,
) error {
	if err := registerValidators(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, slotHandler, frontendHandler, adminMiddleware)
	return nil
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return reqdto.RegisterValidators(v)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.ErrorHandler(logger))
}

func setupRoutes(engine *gin.Engine, slotHandler *api.SlotHandler, frontendHandler *api.FrontendHandler, adminMiddleware *middleware.AdminMiddleware) {
	engine.GET("/health", healthCheck)

	requireAdmin := []gin.HandlerFunc{adminMiddleware.RequireAdmin()}

	addRoutes(&engine.RouterGroup, []route{
		{Method: http.MethodGet, Path: "/frontend", Handler: frontendHandler.Serve},
		{Method: http.MethodGet, Path: "/timeslots", Handler: slotHandler.StreamSlots},
		{Method: http.MethodPost, Path: "/book", Handler: slotHandler.BookSlot},

		{Method: http.MethodGet, Path: "/admin_page", Handler: slotHandler.AdminPage, Mw: requireAdmin},
		{Method: http.MethodPost, Path: "/add", Handler: slotHandler.AddSlot, Mw: requireAdmin},
		{Method: http.MethodDelete, Path: "/remove", Handler: slotHandler.RemoveSlot, Mw: requireAdmin},
		{Method: http.MethodPost, Path: "/remove_all", Handler: slotHandler.RemoveAllSlots, Mw: requireAdmin},
	})

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/slots", Handler: slotHandler.ListSlots},
		})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
