package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/linkreach/internal/infra/database"
	"github.com/xavierca1/linkreach/internal/infra/http/handlers"
	"github.com/xavierca1/linkreach/internal/infra/http/middleware"
	"github.com/xavierca1/linkreach/internal/infra/integration/linkedin"
	"github.com/xavierca1/linkreach/internal/infra/mail"
	"github.com/xavierca1/linkreach/internal/infra/queue"
	"github.com/xavierca1/linkreach/internal/infra/worker"
	"github.com/xavierca1/linkreach/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	campaignRepo := database.NewCampaignRepository(db)
	prospectRepo := database.NewProspectRepository(db)
	outreachRepo := database.NewOutreachRepository(db)
	templateRepo := database.NewTemplateRepository(db)
	analyticsRepo := database.NewAnalyticsRepository(db)

	// 2. Collaborators
	transport := linkedin.NewClient(os.Getenv("LINKEDIN_API_KEY"), os.Getenv("LINKEDIN_API_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	clock := usecase.SystemClock{}

	// 3. UseCases
	aggregator := usecase.NewAnalyticsAggregator(prospectRepo, analyticsRepo, clock)

	dailyCap, _ := strconv.Atoi(os.Getenv("MAX_DAILY_CONNECTIONS"))

	connectionScheduler := usecase.NewConnectionScheduler(
		campaignRepo, prospectRepo, outreachRepo, templateRepo, aggregator,
		transport, producer, mailSender, clock,
		usecase.NewConnectionPacer(), dailyCap,
	)
	connectionScheduler.OperatorEmail = os.Getenv("OPERATOR_EMAIL")

	followUpScheduler := usecase.NewFollowUpScheduler(
		campaignRepo, prospectRepo, outreachRepo, templateRepo, aggregator,
		transport, producer, clock, usecase.NewMessagePacer(),
	)

	createCampaignUC := usecase.NewCreateCampaignUseCase(campaignRepo, templateRepo, aggregator)
	listCampaignsUC := usecase.NewListCampaignsUseCase(campaignRepo, prospectRepo, analyticsRepo)
	importProspectsUC := usecase.NewImportProspectsUseCase(campaignRepo, prospectRepo, aggregator)
	replyIngestor := usecase.NewReplyIngestor(prospectRepo, outreachRepo, aggregator)

	// 4. Workers
	replyWorker := queue.NewWorker(rabbitMQ.Ch, replyIngestor)
	go replyWorker.Start(queue.RepliesQueueName)

	followUpWorker := worker.NewFollowUpWorker(followUpScheduler)
	go followUpWorker.Start(context.Background())

	// 5. Handlers
	campaignHandler := handlers.NewCampaignHandler(createCampaignUC, listCampaignsUC)
	prospectHandler := handlers.NewProspectHandler(importProspectsUC)
	automationHandler := handlers.NewAutomationHandler(connectionScheduler, followUpScheduler)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsRepo, aggregator)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, replyWorker)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/campaigns", campaignHandler.HandleList)
	r.Post("/campaigns", campaignHandler.HandleCreate)
	r.Post("/campaigns/{campaignId}/prospects", prospectHandler.HandleImport)
	r.Post("/campaigns/{campaignId}/start", automationHandler.HandleStartCampaign)
	r.Post("/campaigns/{campaignId}/follow-ups", automationHandler.HandleProcessCampaignFollowUps)
	r.Get("/campaigns/{campaignId}/analytics", analyticsHandler.HandleGet)
	r.Post("/campaigns/{campaignId}/analytics/recompute", analyticsHandler.HandleRecompute)
	r.Post("/automation/follow-ups", automationHandler.HandleProcessFollowUps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 LinkReach engine running on port %s", port)
	http.ListenAndServe(":"+port, r)
}
