package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFlattenSetFusionProfonde(t *testing.T) {
	// Mettre à jour la ville d'une adresse ne doit produire qu'un chemin
	// pointé : le code postal stocké survit à la mise à jour.
	set := flattenSet(map[string]interface{}{
		"identite": map[string]interface{}{
			"nom": "Alaoui",
		},
		"compte": map[string]interface{}{
			"preferences": map[string]interface{}{
				"langue": "ar",
			},
		},
	})

	assert.Equal(t, bson.M{
		"identite.nom":              "Alaoui",
		"compte.preferences.langue": "ar",
	}, set)
}

func TestFlattenSetScalairesEtTableaux(t *testing.T) {
	telephones := []interface{}{
		map[string]interface{}{"type": "mobile", "numero": "0600000000"},
	}
	set := flattenSet(map[string]interface{}{
		"statut":     "inactif",
		"telephones": telephones,
	})

	// Les tableaux sont remplacés en bloc, pas fusionnés.
	assert.Equal(t, bson.M{
		"statut":     "inactif",
		"telephones": telephones,
	}, set)
}

func TestFlattenSetVide(t *testing.T) {
	assert.Empty(t, flattenSet(map[string]interface{}{}))
}

// Écrire un objet à la place d'un scalaire connu est refusé même quand
// la feuille porte un type valide : compte.statut.valeur ne doit jamais
// atteindre le document.
func TestFlattenSetValideSousChampDeScalaire(t *testing.T) {
	_, err := flattenSetValide(map[string]interface{}{
		"compte": map[string]interface{}{
			"statut": map[string]interface{}{"valeur": "actif"},
		},
	}, clientSchema)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "compte.statut", verr.Field)
}

func TestFlattenSetValideChampsLibres(t *testing.T) {
	// metadata est un bloc libre : ses sous-champs passent sans contrôle
	set, err := flattenSetValide(map[string]interface{}{
		"metadata": map[string]interface{}{"source": "import"},
	}, clientSchema)

	require.NoError(t, err)
	assert.Equal(t, "import", set["metadata.source"])
}

func TestFlattenSetValideDates(t *testing.T) {
	set, err := flattenSetValide(map[string]interface{}{
		"identite": map[string]interface{}{"dateNaissance": "1990-05-01T00:00:00Z"},
	}, clientSchema)

	require.NoError(t, err)
	naissance, ok := set["identite.dateNaissance"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 1990, naissance.Year())
}

func TestFlattenSetValideNullSelonChamp(t *testing.T) {
	// dateNaissance est annulable, identite.nom ne l'est pas
	set, err := flattenSetValide(map[string]interface{}{
		"identite": map[string]interface{}{"dateNaissance": nil},
	}, clientSchema)
	require.NoError(t, err)
	assert.Contains(t, set, "identite.dateNaissance")

	_, err = flattenSetValide(map[string]interface{}{
		"identite": map[string]interface{}{"nom": nil},
	}, clientSchema)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "identite.nom", verr.Field)
}

func TestStripImmutable(t *testing.T) {
	fields := map[string]interface{}{
		"id":     "abc",
		"_id":    "abc",
		"role":   "admin",
		"statut": "actif",
	}
	stripImmutable(fields, "role")

	assert.Equal(t, map[string]interface{}{"statut": "actif"}, fields)
}
