package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/rekamjejak/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Activity *apiHandler.ActivityHandler
	Report   *apiHandler.ReportHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))

	// Protected routes
	r.GET("/api/v1/activities", authMiddleware(handlers.Activity.List))
	r.POST("/api/v1/activities", authMiddleware(handlers.Activity.Create))
	r.PUT("/api/v1/activities/{id}", authMiddleware(handlers.Activity.Update))
	r.DELETE("/api/v1/activities/{id}", authMiddleware(handlers.Activity.Delete))

	r.GET("/api/v1/report/summary", authMiddleware(handlers.Report.Summary))
	r.GET("/api/v1/report/dashboard", authMiddleware(handlers.Report.Dashboard))
	r.GET("/api/v1/export/csv", authMiddleware(handlers.Report.ExportCSV))

	return r
}
