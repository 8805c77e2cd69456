package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"agence-livraison/models"
)

// CategorieStore est la surface de persistance consommée par le contrôleur.
type CategorieStore interface {
	Create(ctx context.Context, categorie *models.Categorie) (*models.Categorie, error)
	List(ctx context.Context) ([]models.Categorie, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Categorie, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Categorie, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategorieController gère le CRUD des catégories.
type CategorieController struct {
	store  CategorieStore
	logger zerolog.Logger
}

func NewCategorieController(store CategorieStore, logger zerolog.Logger) *CategorieController {
	return &CategorieController{store: store, logger: logger}
}

func (cc *CategorieController) Create(w http.ResponseWriter, r *http.Request) {
	var categorie models.Categorie
	if err := json.NewDecoder(r.Body).Decode(&categorie); err != nil {
		respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}
	if err := validate.Struct(categorie); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := cc.store.Create(ctx, &categorie)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Catégorie non trouvée.")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (cc *CategorieController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	categories, err := cc.store.List(ctx)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Catégorie non trouvée.")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (cc *CategorieController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categorie, err := cc.store.GetByID(ctx, id)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Catégorie non trouvée.")
		return
	}
	respondJSON(w, http.StatusOK, categorie)
}

func (cc *CategorieController) Update(w http.ResponseWriter, r *http.Request) {
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

	categorie, err := cc.store.Update(ctx, id, fields)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Catégorie non trouvée.")
		return
	}
	respondJSON(w, http.StatusOK, categorie)
}

func (cc *CategorieController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := cc.store.Delete(ctx, id); err != nil {
		respondRepoError(w, cc.logger, err, "Catégorie non trouvée.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Catégorie supprimée avec succès.",
	})
}
