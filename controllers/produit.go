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

// ProduitStore est la surface de persistance consommée par le contrôleur.
type ProduitStore interface {
	Create(ctx context.Context, produit *models.Produit) (*models.Produit, error)
	List(ctx context.Context) ([]models.ProduitDetail, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProduitDetail, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Produit, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProduitController gère le CRUD du catalogue.
type ProduitController struct {
	store  ProduitStore
	logger zerolog.Logger
}

func NewProduitController(store ProduitStore, logger zerolog.Logger) *ProduitController {
	return &ProduitController{store: store, logger: logger}
}

func (pc *ProduitController) Create(w http.ResponseWriter, r *http.Request) {
	var produit models.Produit
	if err := json.NewDecoder(r.Body).Decode(&produit); err != nil {
		respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}
	if err := validate.Struct(produit); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := pc.store.Create(ctx, &produit)
	if err != nil {
		respondRepoError(w, pc.logger, err, "Produit non trouvé.")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (pc *ProduitController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	produits, err := pc.store.List(ctx)
	if err != nil {
		respondRepoError(w, pc.logger, err, "Produit non trouvé.")
		return
	}
	respondJSON(w, http.StatusOK, produits)
}

func (pc *ProduitController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	produit, err := pc.store.GetByID(ctx, id)
	if err != nil {
		respondRepoError(w, pc.logger, err, "Produit non trouvé.")
		return
	}
	respondJSON(w, http.StatusOK, produit)
}

func (pc *ProduitController) Update(w http.ResponseWriter, r *http.Request) {
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

	produit, err := pc.store.Update(ctx, id, fields)
	if err != nil {
		respondRepoError(w, pc.logger, err, "Produit non trouvé.")
		return
	}
	respondJSON(w, http.StatusOK, produit)
}

func (pc *ProduitController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := pc.store.Delete(ctx, id); err != nil {
		respondRepoError(w, pc.logger, err, "Produit non trouvé.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Produit supprimé avec succès.",
	})
}
