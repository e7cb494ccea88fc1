package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/entrevistaja/backend/internal/api/handlers"
	"github.com/entrevistaja/backend/internal/api/middleware"
)

type Deps struct {
	Profile    *handlers.ProfileHandler
	Resume     *handlers.ResumeHandler
	ResumeFile *handlers.ResumeFileHandler
	Analysis   *handlers.AnalysisHandler
	Billing    *handlers.BillingHandler
	Documents  *handlers.DocumentsHandler
	Admin      *handlers.AdminHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Stripe calls these; they authenticate themselves (signature on the
	// webhook, validated body on checkout).
	r.POST("/create-checkout-session", d.Billing.CreateCheckoutSession)
	r.POST("/webhook", d.Billing.Webhook)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.GET("/profile/me", d.Profile.Me)
	auth.PUT("/profile", d.Resume.Save)
	auth.POST("/profile/resume-file", d.ResumeFile.Upload)
	auth.DELETE("/profile/resume-file", d.ResumeFile.Delete)

	auth.GET("/resume", d.Resume.Get)
	auth.PUT("/resume", d.Resume.Put)
	auth.POST("/resume/suggestions", d.Resume.ApplySuggestions)
	auth.GET("/resume/export", d.Resume.Export)

	auth.POST("/analyze", d.Analysis.Analyze)

	auth.POST("/documents/parse", d.Documents.Parse)

	// Support surface, restricted to admin tokens
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/subscriptions/:id", d.Admin.GetSubscription)
}
