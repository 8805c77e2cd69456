package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatutCommandeValide(t *testing.T) {
	for _, statut := range []string{CommandeEnAttente, CommandeExpediee, CommandeLivree, CommandeAnnulee} {
		assert.True(t, StatutCommandeValide(statut), statut)
	}
}

func TestStatutCommandeInvalide(t *testing.T) {
	// Les variantes accentuées historiques ne font pas partie du
	// vocabulaire canonique.
	for _, statut := range []string{"", "en attente", "expédiée", "livrée", "annulée", "inconnu"} {
		assert.False(t, StatutCommandeValide(statut), statut)
	}
}
