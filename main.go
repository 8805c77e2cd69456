package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"agence-livraison/auth"
	"agence-livraison/config"
	"agence-livraison/controllers"
	"agence-livraison/database"
	"agence-livraison/middleware"
	"agence-livraison/models"
	"agence-livraison/notifier"
	"agence-livraison/repository"
	"agence-livraison/routes"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET manquant")
	}

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("connexion MongoDB impossible")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("déconnexion MongoDB")
		}
	}()

	db := client.Database(cfg.MongoDB)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("création des index impossible")
	}

	tokens := auth.NewTokenService(cfg.JWTSecret)

	adminRepo := repository.NewAdminRepository(db)
	livreurRepo := repository.NewLivreurRepository(db)
	clientRepo := repository.NewClientRepository(db)
	produitRepo := repository.NewProduitRepository(db)
	categorieRepo := repository.NewCategorieRepository(db)
	commandeRepo := repository.NewCommandeRepository(db)

	seedAdmin(ctx, cfg, adminRepo, logger)

	emailNotifier := notifier.NewEmailNotifier(cfg.SendgridAPIKey, cfg.EmailSender, clientRepo, logger)

	adminCtrl := controllers.NewAdminController(adminRepo, tokens, logger)
	livreurCtrl := controllers.NewLivreurController(livreurRepo, tokens, logger)
	clientCtrl := controllers.NewClientController(clientRepo, logger)
	produitCtrl := controllers.NewProduitController(produitRepo, logger)
	categorieCtrl := controllers.NewCategorieController(categorieRepo, logger)
	commandeCtrl := controllers.NewCommandeController(commandeRepo, emailNotifier, logger)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger))

	protect := middleware.Protect(tokens, adminRepo, livreurRepo)
	routes.RegisterRoutes(router, protect, adminCtrl, livreurCtrl, clientCtrl, produitCtrl, categorieCtrl, commandeCtrl)

	// CORS enveloppe le routeur pour répondre aussi aux préflights
	// OPTIONS qui ne correspondent à aucune route déclarée.
	handler := middleware.CORS(router)

	logger.Info().Str("port", cfg.Port).Msg("serveur démarré")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Fatal().Err(err).Msg("arrêt du serveur")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// seedAdmin crée le compte admin initial si ADMIN_EMAIL est configuré et
// qu'aucun admin ne porte encore cet email. Sans lui, la surface
// admin-only serait inaccessible sur une base vierge.
func seedAdmin(ctx context.Context, cfg *config.Config, repo *repository.AdminRepository, logger zerolog.Logger) {
	if cfg.AdminEmail == "" || cfg.AdminMotDePasse == "" {
		return
	}
	if _, err := repo.GetByEmail(ctx, cfg.AdminEmail); !errors.Is(err, repository.ErrNotFound) {
		return
	}
	admin := &models.Admin{Email: cfg.AdminEmail, Nom: "Admin", Prenom: "Principal"}
	if _, err := repo.Create(ctx, admin, cfg.AdminMotDePasse); err != nil {
		logger.Error().Err(err).Msg("création de l'admin initial impossible")
		return
	}
	logger.Info().Str("email", cfg.AdminEmail).Msg("admin initial créé")
}
