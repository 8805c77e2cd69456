package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"agence-livraison/models"
	"agence-livraison/repository"
)

type fakeCategorieStore struct {
	docs map[primitive.ObjectID]*models.Categorie
}

func newFakeCategorieStore() *fakeCategorieStore {
	return &fakeCategorieStore{docs: map[primitive.ObjectID]*models.Categorie{}}
}

func (f *fakeCategorieStore) Create(ctx context.Context, categorie *models.Categorie) (*models.Categorie, error) {
	for _, existing := range f.docs {
		if existing.Nom == categorie.Nom {
			return nil, &repository.DuplicateError{Field: "nom"}
		}
	}
	categorie.ID = primitive.NewObjectID()
	f.docs[categorie.ID] = categorie
	return categorie, nil
}

func (f *fakeCategorieStore) List(ctx context.Context) ([]models.Categorie, error) {
	var out []models.Categorie
	for _, c := range f.docs {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategorieStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Categorie, error) {
	if c, ok := f.docs[id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategorieStore) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Categorie, error) {
	c, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if nom, ok := fields["nom"].(string); ok {
		c.Nom = nom
	}
	return c, nil
}

func (f *fakeCategorieStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func postCategorie(t *testing.T, ctrl *CategorieController, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	ctrl.Create(rec, req)
	return rec
}

func TestCreateCategorieRoundTrip(t *testing.T) {
	store := newFakeCategorieStore()
	ctrl := NewCategorieController(store, zerolog.Nop())

	rec := postCategorie(t, ctrl, `{"nom":"Boissons"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Categorie
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.False(t, created.ID.IsZero())

	// Relecture par l'identifiant rendu : mêmes valeurs.
	req := httptest.NewRequest(http.MethodGet, "/api/categories/"+created.ID.Hex(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": created.ID.Hex()})
	getRec := httptest.NewRecorder()
	ctrl.GetByID(getRec, req)

	require.Equal(t, http.StatusOK, getRec.Code)
	var fetched models.Categorie
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &fetched))
	assert.Equal(t, "Boissons", fetched.Nom)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreateCategorieDuplication(t *testing.T) {
	store := newFakeCategorieStore()
	ctrl := NewCategorieController(store, zerolog.Nop())

	require.Equal(t, http.StatusCreated, postCategorie(t, ctrl, `{"nom":"Boissons"}`).Code)

	rec := postCategorie(t, ctrl, `{"nom":"Boissons"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "nom")

	// La première catégorie reste seule et inchangée.
	assert.Len(t, store.docs, 1)
}

func TestCreateCategorieNomManquant(t *testing.T) {
	ctrl := NewCategorieController(newFakeCategorieStore(), zerolog.Nop())

	rec := postCategorie(t, ctrl, `{"description":"sans nom"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCategorieInconnue(t *testing.T) {
	ctrl := NewCategorieController(newFakeCategorieStore(), zerolog.Nop())

	id := primitive.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodGet, "/api/categories/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	ctrl.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "non trouvée")
}

func TestGetCategorieIDInvalide(t *testing.T) {
	ctrl := NewCategorieController(newFakeCategorieStore(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/categories/zzz", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "zzz"})
	rec := httptest.NewRecorder()
	ctrl.GetByID(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ID invalide")
}
