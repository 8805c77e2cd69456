package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"agence-livraison/models"
)

// ClientStore est la surface de persistance consommée par le contrôleur.
type ClientStore interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Client, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByEmail(ctx context.Context, email string) error
}

// ClientController gère le CRUD des clients.
type ClientController struct {
	store  ClientStore
	logger zerolog.Logger
}

func NewClientController(store ClientStore, logger zerolog.Logger) *ClientController {
	return &ClientController{store: store, logger: logger}
}

func (cc *ClientController) Create(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}
	if err := validate.Struct(client); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := cc.store.Create(ctx, &client)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Client non trouvé.")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (cc *ClientController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	clients, err := cc.store.List(ctx)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Client non trouvé.")
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

func (cc *ClientController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	client, err := cc.store.GetByID(ctx, id)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Client non trouvé.")
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// Update applique une mise à jour partielle en fusion profonde : mettre à
// jour la ville d'une adresse ne touche pas son code postal.
func (cc *ClientController) Update(w http.ResponseWriter, r *http.Request) {
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

	client, err := cc.store.Update(ctx, id, fields)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Client non trouvé.")
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (cc *ClientController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := cc.store.Delete(ctx, id); err != nil {
		respondRepoError(w, cc.logger, err, "Client non trouvé.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Client supprimé avec succès.",
	})
}

func (cc *ClientController) DeleteByEmail(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := cc.store.DeleteByEmail(ctx, email); err != nil {
		respondRepoError(w, cc.logger, err, "Client non trouvé avec cet email.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Client supprimé avec succès.",
	})
}
