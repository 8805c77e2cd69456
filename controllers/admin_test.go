package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"agence-livraison/auth"
	"agence-livraison/models"
	"agence-livraison/repository"
)

type fakeAdminStore struct {
	admins map[string]*models.Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: map[string]*models.Admin{}}
}

func (f *fakeAdminStore) Create(ctx context.Context, admin *models.Admin, motDePasse string) (*models.Admin, error) {
	if _, ok := f.admins[admin.Email]; ok {
		return nil, &repository.DuplicateError{Field: "email"}
	}
	digest, err := auth.HashPassword(motDePasse)
	if err != nil {
		return nil, err
	}
	admin.ID = primitive.NewObjectID()
	admin.MotDePasse = digest
	admin.Role = models.RoleAdmin
	admin.Statut = models.StatutActif
	f.admins[admin.Email] = admin
	return admin, nil
}

func (f *fakeAdminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if admin, ok := f.admins[email]; ok {
		return admin, nil
	}
	return nil, repository.ErrNotFound
}

func seedAdmin(t *testing.T, store *fakeAdminStore) *models.Admin {
	t.Helper()
	admin, err := store.Create(context.Background(),
		&models.Admin{Email: "admin@agence.ma", Nom: "Benali", Prenom: "Sara"},
		"motdepasse123")
	require.NoError(t, err)
	return admin
}

func postLogin(t *testing.T, ctrl *AdminController, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	ctrl.Login(rec, req)
	return rec
}

func TestAdminLogin(t *testing.T) {
	store := newFakeAdminStore()
	tokens := auth.NewTokenService("secret-de-test")
	ctrl := NewAdminController(store, tokens, zerolog.Nop())
	admin := seedAdmin(t, store)

	rec := postLogin(t, ctrl, `{"email":"admin@agence.ma","motDePasse":"motdepasse123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Token   string       `json:"token"`
		Admin   models.Admin `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.Hex(), claims.ID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// Le condensé ne sort jamais, même au login.
	assert.NotContains(t, rec.Body.String(), "motDePasse")
	assert.NotContains(t, rec.Body.String(), admin.MotDePasse)
}

func TestAdminLoginMotDePasseIncorrect(t *testing.T) {
	store := newFakeAdminStore()
	ctrl := NewAdminController(store, auth.NewTokenService("secret-de-test"), zerolog.Nop())
	seedAdmin(t, store)

	// Email inconnu et mot de passe erroné rendent le même message.
	for _, body := range []string{
		`{"email":"admin@agence.ma","motDePasse":"mauvais"}`,
		`{"email":"inconnu@agence.ma","motDePasse":"motdepasse123"}`,
	} {
		rec := postLogin(t, ctrl, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "Email ou mot de passe incorrect")
	}
}

func TestAdminCreateDuplication(t *testing.T) {
	store := newFakeAdminStore()
	ctrl := NewAdminController(store, auth.NewTokenService("secret-de-test"), zerolog.Nop())
	seedAdmin(t, store)

	body := `{"email":"admin@agence.ma","nom":"Benali","prenom":"Sara","motDePasse":"autremotdepasse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	ctrl.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}

func TestAdminCreatePayloadInvalide(t *testing.T) {
	ctrl := NewAdminController(newFakeAdminStore(), auth.NewTokenService("secret-de-test"), zerolog.Nop())

	for _, body := range []string{
		`{"email":"pas-un-email","nom":"Benali","prenom":"Sara","motDePasse":"motdepasse123"}`,
		`{"email":"ok@agence.ma","nom":"","prenom":"Sara","motDePasse":"motdepasse123"}`,
		`{"email":"ok@agence.ma","nom":"Benali","prenom":"Sara","motDePasse":"abc"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		ctrl.Create(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
