package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"agence-livraison/auth"
	"agence-livraison/models"
	"agence-livraison/repository"
)

type fakeAdmins struct {
	admin *models.Admin
}

func (f *fakeAdmins) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	if f.admin != nil && f.admin.ID == id {
		return f.admin, nil
	}
	return nil, repository.ErrNotFound
}

type fakeLivreurs struct {
	livreur *models.Livreur
}

func (f *fakeLivreurs) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Livreur, error) {
	if f.livreur != nil && f.livreur.ID == id {
		return f.livreur, nil
	}
	return nil, repository.ErrNotFound
}

func setup(t *testing.T) (*auth.TokenService, *fakeAdmins, *fakeLivreurs, http.Handler) {
	t.Helper()
	tokens := auth.NewTokenService("secret-de-test")
	admins := &fakeAdmins{admin: &models.Admin{ID: primitive.NewObjectID(), Role: models.RoleAdmin, Email: "admin@agence.ma"}}
	livreurs := &fakeLivreurs{livreur: &models.Livreur{ID: primitive.NewObjectID(), Role: models.RoleLivreur, Email: "livreur@agence.ma"}}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := ActorFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
	})
	handler := Protect(tokens, admins, livreurs)(final)
	return tokens, admins, livreurs, handler
}

func TestProtectTokenManquant(t *testing.T) {
	_, _, _, handler := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/livreurs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectTokenMalForme(t *testing.T) {
	_, _, _, handler := setup(t)

	for _, header := range []string{"Bearer", "Bearer pas-un-token", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/livreurs", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestProtectActeurCharge(t *testing.T) {
	tokens, admins, _, handler := setup(t)

	token, err := tokens.Issue(admins.admin.ID.Hex(), models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/livreurs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectActeurSupprime(t *testing.T) {
	// Un token valide dont l'acteur a été supprimé depuis l'émission
	// est traité comme non authentifié.
	tokens, _, _, handler := setup(t)

	token, err := tokens.Issue(primitive.NewObjectID().Hex(), models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/livreurs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRoleInconnu(t *testing.T) {
	// Un rôle hors admin/livreur vaut 401, pas 403.
	tokens, admins, _, handler := setup(t)

	token, err := tokens.Issue(admins.admin.ID.Hex(), "super")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/livreurs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnlyRefuseLivreur(t *testing.T) {
	tokens, _, livreurs, _ := setup(t)

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Protect(tokens, &fakeAdmins{}, livreurs)(AdminOnly(final))

	token, err := tokens.Issue(livreurs.livreur.ID.Hex(), models.RoleLivreur)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/livreurs/create", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnlyAccepteAdmin(t *testing.T) {
	tokens, admins, livreurs, _ := setup(t)

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Protect(tokens, admins, livreurs)(AdminOnly(final))

	token, err := tokens.Issue(admins.admin.ID.Hex(), models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/livreurs/create", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
