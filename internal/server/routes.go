package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wordnest/internal/ai"
	"wordnest/internal/db"
	"wordnest/internal/handlers"
	"wordnest/internal/metrics"
	"wordnest/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, aiClient *ai.Client) error {
	metrics.Init(database)

	authMiddleware := middleware.NewAuthMiddleware(s.Session, database)

	vocabHandler := handlers.NewVocabularyHandler(database)
	listHandler := handlers.NewSharedListHandler(database)
	aiHandler := handlers.NewAIHandler(aiClient)
	userHandler := handlers.NewUserHandler(database)
	healthHandler := handlers.NewHealthHandler(database)

	// Unauthenticated probes
	s.App.Get("/healthz", healthHandler.Healthz)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes - OIDC is required, every other route assumes an
	// authenticated actor.
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. All users must be authenticated.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Personal vocabulary notebook
	vocab := s.App.Group("/vocabulary", authMiddleware.RequireAuth)
	vocab.Get("/export", vocabHandler.Export)
	vocab.Get("/", vocabHandler.List)
	vocab.Post("/", vocabHandler.Create)
	vocab.Put("/:id", vocabHandler.Update)
	vocab.Delete("/:id", vocabHandler.Delete)

	// Collaborative shared lists
	lists := s.App.Group("/shared-lists", authMiddleware.RequireAuth)
	lists.Post("/", listHandler.Create)
	lists.Get("/my-lists", listHandler.MyLists)
	lists.Get("/shared-with-me", listHandler.SharedWithMe)
	lists.Get("/:id", listHandler.Get)
	lists.Post("/:id/collaborator", listHandler.AddCollaborator)
	lists.Delete("/:id/collaborator/:friendId", listHandler.RemoveCollaborator)
	lists.Post("/:id/word", listHandler.AddWord)
	lists.Delete("/:id/word/:wordId", listHandler.RemoveWord)
	lists.Delete("/:id", listHandler.Delete)

	// AI word lookup
	s.App.Post("/ai/word-details", authMiddleware.RequireAuth, aiHandler.WordDetails)

	// Friend picker directory view
	s.App.Get("/friends", authMiddleware.RequireAuth, userHandler.ListFriends)

	return nil
}
