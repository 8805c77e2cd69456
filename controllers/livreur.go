package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"agence-livraison/auth"
	"agence-livraison/models"
	"agence-livraison/repository"
)

// LivreurStore est la surface de persistance consommée par le contrôleur.
type LivreurStore interface {
	Create(ctx context.Context, livreur *models.Livreur, motDePasse string) (*models.Livreur, error)
	List(ctx context.Context) ([]models.Livreur, error)
	GetByEmail(ctx context.Context, email string) (*models.Livreur, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Livreur, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Livreur, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// LivreurController gère le cycle de vie des livreurs.
type LivreurController struct {
	store  LivreurStore
	tokens *auth.TokenService
	logger zerolog.Logger
}

func NewLivreurController(store LivreurStore, tokens *auth.TokenService, logger zerolog.Logger) *LivreurController {
	return &LivreurController{store: store, tokens: tokens, logger: logger}
}

// Login authentifie un livreur par email et mot de passe.
func (lc *LivreurController) Login(w http.ResponseWriter, r *http.Request) {
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

	livreur, err := lc.store.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "Email ou mot de passe incorrect")
			return
		}
		respondRepoError(w, lc.logger, err, "")
		return
	}
	if !auth.CheckPassword(creds.MotDePasse, livreur.MotDePasse) {
		respondError(w, http.StatusBadRequest, "Email ou mot de passe incorrect")
		return
	}

	token, err := lc.tokens.Issue(livreur.ID.Hex(), livreur.Role)
	if err != nil {
		lc.logger.Error().Err(err).Msg("émission du token impossible")
		respondError(w, http.StatusInternalServerError, "Erreur serveur interne")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"livreur": livreur,
	})
}

// Create crée un livreur. Route réservée aux admins.
func (lc *LivreurController) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email      string `json:"email" validate:"required,email"`
		Nom        string `json:"nom" validate:"required"`
		Prenom     string `json:"prenom" validate:"required"`
		Telephone  string `json:"telephone" validate:"required"`
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

	livreur := &models.Livreur{
		Email:     payload.Email,
		Nom:       payload.Nom,
		Prenom:    payload.Prenom,
		Telephone: payload.Telephone,
	}
	created, err := lc.store.Create(ctx, livreur, payload.MotDePasse)
	if err != nil {
		respondRepoError(w, lc.logger, err, "Livreur non trouvé")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"livreur": created,
	})
}

// List rend tous les livreurs. Route réservée aux admins.
func (lc *LivreurController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	livreurs, err := lc.store.List(ctx)
	if err != nil {
		respondRepoError(w, lc.logger, err, "Livreur non trouvé")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"livreurs": livreurs,
	})
}

func (lc *LivreurController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	livreur, err := lc.store.GetByID(ctx, id)
	if err != nil {
		respondRepoError(w, lc.logger, err, "Livreur non trouvé")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"livreur": livreur,
	})
}

// Update applique une mise à jour partielle ; le mot de passe n'est
// re-haché que s'il figure dans le payload.
func (lc *LivreurController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	livreur, err := lc.store.Update(ctx, id, fields)
	if err != nil {
		respondRepoError(w, lc.logger, err, "Livreur non trouvé")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"livreur": livreur,
	})
}

// Delete supprime un livreur. Route réservée aux admins.
func (lc *LivreurController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := lc.store.Delete(ctx, id); err != nil {
		respondRepoError(w, lc.logger, err, "Livreur non trouvé")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Livreur supprimé avec succès",
	})
}
