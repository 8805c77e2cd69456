package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"agence-livraison/repository"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"success": false, "message": message})
}

// respondRepoError traduit les erreurs de repository vers la taxonomie
// HTTP : not-found en 404, duplication et validation en 400 avec le champ
// fautif, le reste en 500 générique (le détail part dans les logs, jamais
// vers le client).
func respondRepoError(w http.ResponseWriter, logger zerolog.Logger, err error, notFoundMessage string) {
	var dup *repository.DuplicateError
	var val *repository.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMessage)
	case errors.As(err, &dup):
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Duplication : %s existe déjà.", dup.Field))
	case errors.As(err, &val):
		respondError(w, http.StatusBadRequest, val.Error())
	default:
		logger.Error().Err(err).Msg("erreur repository")
		respondError(w, http.StatusInternalServerError, "Erreur serveur interne")
	}
}

// parseID lit le paramètre de chemin {id}. Un ObjectID mal formé vaut
// 400 "ID invalide", jamais 500.
func parseID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID invalide")
		return primitive.NilObjectID, false
	}
	return id, true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Sprintf("Champ invalide : %s", fieldErrs[0].Namespace())
	}
	return "Requête invalide"
}
