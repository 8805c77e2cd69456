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

// CommandeStore est la surface de persistance consommée par le contrôleur.
type CommandeStore interface {
	Create(ctx context.Context, commande *models.Commande) (*models.Commande, error)
	List(ctx context.Context) ([]models.CommandeDetail, error)
	ListByLivreur(ctx context.Context, livreurID primitive.ObjectID) ([]models.CommandeDetail, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.CommandeDetail, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Commande, error)
	UpdateStatut(ctx context.Context, id primitive.ObjectID, statut string) (*models.Commande, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Notifier prévient le client d'un changement de statut. L'envoi est
// asynchrone et son échec n'affecte jamais la réponse HTTP.
type Notifier interface {
	NotifierStatut(commande *models.Commande)
}

// CommandeController gère le CRUD des commandes et le workflow de statut.
type CommandeController struct {
	store    CommandeStore
	notifier Notifier
	logger   zerolog.Logger
}

func NewCommandeController(store CommandeStore, notifier Notifier, logger zerolog.Logger) *CommandeController {
	return &CommandeController{store: store, notifier: notifier, logger: logger}
}

// Create enregistre une commande. Le client référencé doit exister et
// l'adresse de livraison est obligatoire, copiée dans la commande.
func (cc *CommandeController) Create(w http.ResponseWriter, r *http.Request) {
	var commande models.Commande
	if err := json.NewDecoder(r.Body).Decode(&commande); err != nil {
		respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}
	if commande.ClientID.IsZero() {
		respondError(w, http.StatusBadRequest, "Champ invalide : client_id")
		return
	}
	if err := validate.Struct(commande); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := cc.store.Create(ctx, &commande)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Commande non trouvée")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (cc *CommandeController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	commandes, err := cc.store.List(ctx)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Commande non trouvée")
		return
	}
	respondJSON(w, http.StatusOK, commandes)
}

// ListByLivreur rend les commandes affectées au livreur donné.
func (cc *CommandeController) ListByLivreur(w http.ResponseWriter, r *http.Request) {
	livreurID, ok := parseID(w, r, "livreurId")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	commandes, err := cc.store.ListByLivreur(ctx, livreurID)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Commande non trouvée")
		return
	}
	respondJSON(w, http.StatusOK, commandes)
}

func (cc *CommandeController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	commande, err := cc.store.GetByID(ctx, id)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Commande non trouvée")
		return
	}
	respondJSON(w, http.StatusOK, commande)
}

func (cc *CommandeController) Update(w http.ResponseWriter, r *http.Request) {
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

	commande, err := cc.store.Update(ctx, id, fields)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Commande non trouvée")
		return
	}
	respondJSON(w, http.StatusOK, commande)
}

// UpdateStatut écrit le nouveau statut de la commande. Seule
// l'appartenance au vocabulaire est contrôlée, aucune contrainte de
// transition : livree peut suivre en_attente directement.
func (cc *CommandeController) UpdateStatut(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Statut string `json:"statut"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Requête invalide")
		return
	}
	if !models.StatutCommandeValide(body.Statut) {
		respondError(w, http.StatusBadRequest, "Statut invalide")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	commande, err := cc.store.UpdateStatut(ctx, id, body.Statut)
	if err != nil {
		respondRepoError(w, cc.logger, err, "Commande non trouvée")
		return
	}

	go cc.notifier.NotifierStatut(commande)

	respondJSON(w, http.StatusOK, commande)
}

func (cc *CommandeController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := cc.store.Delete(ctx, id); err != nil {
		respondRepoError(w, cc.logger, err, "Commande non trouvée")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Commande supprimée avec succès",
	})
}
