package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound signale qu'aucun document ne porte l'identifiant demandé.
var ErrNotFound = errors.New("document non trouvé")

// DuplicateError signale une collision sur un champ unique.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplication : %s existe déjà", e.Field)
}

// ValidationError signale un champ de requête invalide ou une référence
// vers un document inexistant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s : %s", e.Field, e.Reason)
}
