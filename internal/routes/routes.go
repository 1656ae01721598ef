package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylab/swingcoach/internal/config"
	"github.com/fairwaylab/swingcoach/internal/handlers"
	"github.com/fairwaylab/swingcoach/internal/middleware"
	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/internal/services"
)

// RegisterRoutes wires repositories, services and handlers onto the app.
// Storage is injected so tests and local runs can use the disk backend.
func RegisterRoutes(app *fiber.App, pool *pgxpool.Pool, cfg *config.Config, storage services.Storage) {
	userRepo := repository.NewUserRepository(pool)
	coachRepo := repository.NewCoachRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	groupRepo := repository.NewSectionGroupRepository(pool)
	sectionRepo := repository.NewSwingSectionRepository(pool)

	aiService := services.NewAIService(cfg.OpenAIAPIKey)
	transcriptionService := services.NewTranscriptionService(cfg.OpenAIAPIKey)
	lineService := services.NewLineService(cfg.LineChannelSecret, cfg.LineChannelAccessToken)
	imageService := services.NewImageService()

	authService := services.NewAuthService(userRepo, coachRepo, cfg.JWTSecret)
	videoService := services.NewVideoService(pool, videoRepo, groupRepo, sectionRepo, storage)
	sectionService := services.NewSectionService(groupRepo, sectionRepo, aiService)
	sessionService := services.NewSessionService(sessionRepo, videoRepo)
	reservationService := services.NewReservationService(reservationRepo, locationRepo)
	webhookService := services.NewWebhookService(userRepo, videoRepo, storage, lineService)

	authHandler := handlers.NewAuthHandler(authService, userRepo, coachRepo)
	userHandler := handlers.NewUserHandler(userRepo, imageService, storage)
	coachHandler := handlers.NewCoachHandler(coachRepo)
	locationHandler := handlers.NewLocationHandler(locationRepo)
	videoHandler := handlers.NewVideoHandler(videoService, videoRepo)
	sectionHandler := handlers.NewSectionHandler(sectionService, sectionRepo, transcriptionService)
	uploadHandler := handlers.NewUploadHandler(storage, imageService, sectionRepo)
	mediaHandler := handlers.NewMediaHandler(storage)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	lineHandler := handlers.NewLineHandler(lineService, webhookService, authService)

	api := app.Group("/api/v1")
	auth := middleware.AuthRequired(cfg.JWTSecret)

	// Auth
	api.Post("/auth/register", authHandler.RegisterUser)
	api.Post("/auth/register/coach", authHandler.RegisterCoach)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/line/login", lineHandler.Login)
	api.Get("/auth/me", auth, authHandler.Me)

	// LINE webhook; signature-verified, not token-authenticated.
	api.Post("/line/webhook", lineHandler.Webhook)

	// Users
	api.Get("/users", auth, userHandler.List)
	api.Get("/users/:id", auth, userHandler.Get)
	api.Patch("/users/:id", auth, userHandler.Update)
	api.Post("/users/:id/profile-picture", auth, userHandler.UploadProfilePicture)
	api.Get("/users/:id/videos", auth, videoHandler.ListByUser)

	// Coaches
	api.Get("/coaches", auth, coachHandler.List)
	api.Get("/coaches/:id", auth, coachHandler.Get)
	api.Patch("/coaches/:id", auth, coachHandler.Update)

	// Locations
	api.Post("/locations", auth, locationHandler.Create)
	api.Get("/locations", auth, locationHandler.List)
	api.Get("/locations/:id", auth, locationHandler.Get)
	api.Patch("/locations/:id", auth, locationHandler.Update)

	// Videos
	api.Post("/videos", auth, videoHandler.Upload)
	api.Get("/videos", auth, videoHandler.ListMine)
	api.Get("/videos/all", auth, videoHandler.ListAll)
	api.Get("/videos/search", auth, videoHandler.Search)
	api.Get("/videos/:id", auth, videoHandler.Get)
	api.Get("/videos/:id/with-sections", auth, videoHandler.GetWithSections)
	api.Get("/videos/:id/feedback-summary", auth, videoHandler.FeedbackSummary)
	api.Patch("/videos/:id", auth, videoHandler.Update)
	api.Delete("/videos/:id", auth, videoHandler.Delete)
	api.Post("/videos/:id/pin", auth, videoHandler.Pin)
	api.Delete("/videos/:id/pin", auth, videoHandler.Unpin)
	api.Post("/videos/:id/reviewed", auth, videoHandler.MarkReviewed)
	api.Post("/videos/:id/markup", auth, uploadHandler.SaveMarkup)
	api.Get("/videos/:id/markup", auth, uploadHandler.GetMarkup)

	// Section groups and sections
	api.Post("/section-groups", auth, sectionHandler.CreateGroup)
	api.Put("/section-groups/:group_id/feedback", auth, sectionHandler.SetOverallFeedback)
	api.Put("/section-groups/:group_id/training-menu", auth, sectionHandler.SetNextTrainingMenu)
	api.Get("/section-groups/:group_id/sections", auth, sectionHandler.ListByGroup)
	api.Post("/sections", auth, sectionHandler.Create)
	api.Get("/sections/:id", auth, sectionHandler.Get)
	api.Patch("/sections/:id", auth, sectionHandler.Update)
	api.Delete("/sections/:id", auth, sectionHandler.Delete)
	api.Put("/sections/:id/comment", auth, sectionHandler.AttachComment)
	api.Post("/sections/:id/voice-comment", auth, sectionHandler.AttachVoiceComment)
	api.Post("/sections/:id/image", auth, uploadHandler.SectionImage)
	api.Post("/sections/:id/markup-image", auth, uploadHandler.MarkupImage)

	// Media resolution
	api.Get("/media-url", auth, mediaHandler.MediaURL)
	api.Get("/proxy-file", auth, mediaHandler.ProxyFile)

	// Coaching sessions (video review requests)
	api.Post("/sessions", auth, sessionHandler.Create)
	api.Get("/sessions", auth, sessionHandler.List)
	api.Get("/sessions/:id", auth, sessionHandler.Get)
	api.Put("/sessions/:id/status", auth, sessionHandler.UpdateStatus)

	// Reservations (live appointments)
	api.Post("/reservations", auth, reservationHandler.Create)
	api.Get("/reservations", auth, reservationHandler.List)
	api.Get("/reservations/:id", auth, reservationHandler.Get)
	api.Patch("/reservations/:id", auth, reservationHandler.Update)
	api.Put("/reservations/:id/status", auth, reservationHandler.UpdateStatus)
	api.Post("/reservations/:id/payment", auth, reservationHandler.MarkPaid)
}
