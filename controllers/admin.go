package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"agence-livraison/auth"
	"agence-livraison/models"
	"agence-livraison/repository"
)

// AdminStore est la surface de persistance consommée par le contrôleur.
type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin, motDePasse string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// AdminController gère le login et la création des administrateurs.
type AdminController struct {
	store  AdminStore
	tokens *auth.TokenService
	logger zerolog.Logger
}

func NewAdminController(store AdminStore, tokens *auth.TokenService, logger zerolog.Logger) *AdminController {
	return &AdminController{store: store, tokens: tokens, logger: logger}
}

// Login authentifie un admin par email et mot de passe. Email inconnu et
// mot de passe erroné rendent le même message, sans distinction.
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email      string `json:"email" validate:"required,email"`
		MotDePasse string `json:"motDePasse" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}
	if err := validate.Struct(creds); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	admin, err := ac.store.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "Email ou mot de passe incorrect")
			return
		}
		respondRepoError(w, ac.logger, err, "")
		return
	}
	if !auth.CheckPassword(creds.MotDePasse, admin.MotDePasse) {
		respondError(w, http.StatusBadRequest, "Email ou mot de passe incorrect")
		return
	}

	token, err := ac.tokens.Issue(admin.ID.Hex(), admin.Role)
	if err != nil {
		ac.logger.Error().Err(err).Msg("émission du token impossible")
		respondError(w, http.StatusInternalServerError, "Erreur serveur interne")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"admin":   admin,
	})
}

// Create crée un nouvel admin. Route réservée aux admins authentifiés.
func (ac *AdminController) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email      string `json:"email" validate:"required,email"`
		Nom        string `json:"nom" validate:"required"`
		Prenom     string `json:"prenom" validate:"required"`
		MotDePasse string `json:"motDePasse" validate:"required,min=6"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	admin := &models.Admin{Email: payload.Email, Nom: payload.Nom, Prenom: payload.Prenom}
	created, err := ac.store.Create(ctx, admin, payload.MotDePasse)
	if err != nil {
		respondRepoError(w, ac.logger, err, "Admin non trouvé")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"admin":   created,
	})
}
