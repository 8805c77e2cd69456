package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// L'email est normalisé en mise à jour comme à la création, sinon une
// variante de casse contournerait l'unicité sur contact.email.
func TestClientUpdateSetNormaliseEmail(t *testing.T) {
	set, err := clientUpdateSet(map[string]interface{}{
		"contact": map[string]interface{}{"email": "  Nadia.B@Example.COM "},
	})

	require.NoError(t, err)
	assert.Equal(t, "nadia.b@example.com", set["contact.email"])
}

func TestClientUpdateSetTypeIncoherent(t *testing.T) {
	_, err := clientUpdateSet(map[string]interface{}{
		"identite": map[string]interface{}{"nom": 123.0},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "identite.nom", verr.Field)
}
