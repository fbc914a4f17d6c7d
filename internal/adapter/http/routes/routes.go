package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tsmit_os/docs"
	"tsmit_os/internal/adapter/http/handlers"
	"tsmit_os/internal/adapter/http/middleware"
	"tsmit_os/internal/infrastructure/config"
	"tsmit_os/internal/infrastructure/metrics"
)

const shutdownTimeout = 15 * time.Second

// Run wires the application, serves HTTP until ctx is done and then shuts
// the server down, draining queued notifications.
func Run(ctx context.Context, cfg *config.Configuration) error {
	gin.SetMode(cfg.HTTP.GinMode)

	app, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTP.Port),
		Handler:           NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			app.Close(context.Background())
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logrus.Info("shutting down")
	err = srv.Shutdown(shutdownCtx)
	app.Close(shutdownCtx)
	return err
}

// NewRouter builds the gin engine over app's handlers.
func NewRouter(app *App) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Rotas autenticadas
	authed := v1.Group("")
	authed.Use(app.authenticator.RequireAuth())
	addAuthRoutes(authed)
	addServiceOrderRoutes(authed, app.serviceOrderHandler)
	addDashboardRoutes(authed, app.dashboardHandler)
	addCatalogRoutes(authed, app)

	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(middleware.RequestLog())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.RequestID(c),
			"path":       c.Request.URL.Path,
		}).Errorf("recovered from panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "message": "An internal error occurred"})
	}))
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", handlers.Ping)
}

func addAuthRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", handlers.Me)
}

func addDashboardRoutes(rg *gin.RouterGroup, h *handlers.DashboardHandler) {
	rg.GET("/dashboard", h.Stats)
}
