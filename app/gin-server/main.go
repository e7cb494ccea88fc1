package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	stripe "github.com/stripe/stripe-go/v82"
	"google.golang.org/api/option"

	"github.com/entrevistaja/backend/config"
	"github.com/entrevistaja/backend/internal/api/handlers"
	"github.com/entrevistaja/backend/internal/api/middleware"
	"github.com/entrevistaja/backend/internal/api/routes"
	"github.com/entrevistaja/backend/internal/billing"
	"github.com/entrevistaja/backend/internal/cache"
	"github.com/entrevistaja/backend/internal/logger"
	"github.com/entrevistaja/backend/internal/match"
	"github.com/entrevistaja/backend/internal/providers/analyzer"
	mongorepo "github.com/entrevistaja/backend/internal/repositories/mongo"
	pgrepo "github.com/entrevistaja/backend/internal/repositories/postgres"
	"github.com/entrevistaja/backend/internal/resume"
	"github.com/entrevistaja/backend/internal/services"
	"github.com/entrevistaja/backend/internal/storage"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()

	ctx := context.Background()

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	lg.Info("MongoDB connected")

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	lg.Info("PostgreSQL connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	lg.Info("Redis connected")

	stripeCfg, err := config.LoadStripeConfig()
	if err != nil {
		log.Fatalf("Stripe config error: %v", err)
	}
	stripe.Key = stripeCfg.SecretKey

	// Repositories
	db := config.MongoDatabase()
	profileRepo := mongorepo.NewProfileRepo(db)
	billingRepo := mongorepo.NewBillingRepo(db)
	resumeFileRepo := pgrepo.NewResumeFileRepo(config.PostgresDB)

	// Blob storage (optional: without a bucket, attachment uploads 500)
	var objectStore storage.ObjectStore
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		var gcsOpts []option.ClientOption
		if creds := os.Getenv("GCS_CREDENTIALS_FILE"); creds != "" {
			gcsOpts = append(gcsOpts, option.WithCredentialsFile(creds))
		}
		gcs, err := storage.NewGCSStore(ctx, bucket, gcsOpts...)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer gcs.Close()
		objectStore = gcs
	} else {
		lg.Warn("GCS_BUCKET not set, resume file uploads disabled")
	}

	// Analysis provider
	provider, err := buildAnalyzer(ctx)
	if err != nil {
		log.Fatalf("Analyzer init error: %v", err)
	}
	defer provider.Close()

	// Services
	profileSvc := services.NewProfileService(profileRepo)
	resumeFileSvc := services.NewResumeFileService(resumeFileRepo, profileRepo, objectStore, lg)
	editors := resume.NewStore()
	history := cache.NewRedisCache(config.RedisClient)
	orchestrator := match.NewOrchestrator(provider, history, lg)
	checkoutSvc := billing.NewCheckoutService(stripeCfg.ReturnURL, lg)
	webhookProc := billing.NewWebhookProcessor(billingRepo, profileRepo, lg)

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(lg))

	routes.RegisterRoutes(r, routes.Deps{
		Profile:    handlers.NewProfileHandler(profileSvc),
		Resume:     handlers.NewResumeHandler(editors, profileSvc, resume.NewChromedpRenderer()),
		ResumeFile: handlers.NewResumeFileHandler(resumeFileSvc),
		Analysis:   handlers.NewAnalysisHandler(orchestrator, editors),
		Billing:    handlers.NewBillingHandler(checkoutSvc, webhookProc, stripeCfg.WebhookSecret, lg),
		Documents:  handlers.NewDocumentsHandler(),
		Admin:      handlers.NewAdminHandler(billingRepo),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "7777"
	}
	lg.WithField("port", port).Info("server listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildAnalyzer picks the AI backend: "vertex" uses Gemini on Vertex AI,
// anything else goes through the OpenAI-compatible gateway.
func buildAnalyzer(ctx context.Context) (analyzer.Provider, error) {
	if os.Getenv("AI_PROVIDER") == "vertex" {
		return analyzer.NewVertexGemini(ctx,
			os.Getenv("GCP_PROJECT_ID"),
			os.Getenv("GCP_LOCATION"),
			os.Getenv("VERTEX_MODEL"),
		)
	}
	return analyzer.NewGateway(), nil
}
