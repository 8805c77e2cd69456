package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"agence-livraison/auth"
	"agence-livraison/models"
)

type contextKey string

// ActorContextKey porte l'acteur authentifié dans le contexte requête.
const ActorContextKey = contextKey("actor")

// Actor est le principal authentifié, admin ou livreur, rechargé depuis
// sa collection à chaque requête protégée.
type Actor struct {
	ID     primitive.ObjectID
	Role   string
	Email  string
	Nom    string
	Prenom string
}

// AdminSource et LivreurSource chargent l'acteur correspondant au rôle
// embarqué dans le token. Deux collections disjointes, un seul aiguillage.
type AdminSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
}

type LivreurSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Livreur, error)
}

// Protect vérifie le token Bearer, recharge l'acteur selon son rôle et
// l'attache au contexte. Token absent ou invalide, rôle inconnu ou acteur
// supprimé depuis l'émission : tous répondent 401.
func Protect(tokens *auth.TokenService, admins AdminSource, livreurs LivreurSource) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Non autorisé, token manquant")
				return
			}
			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "Non autorisé, token manquant")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				unauthorized(w, "Non autorisé, token invalide")
				return
			}
			id, err := primitive.ObjectIDFromHex(claims.ID)
			if err != nil {
				unauthorized(w, "Non autorisé, token invalide")
				return
			}

			var actor *Actor
			switch claims.Role {
			case models.RoleAdmin:
				admin, err := admins.GetByID(r.Context(), id)
				if err != nil {
					unauthorized(w, "Utilisateur non trouvé")
					return
				}
				actor = &Actor{ID: admin.ID, Role: admin.Role, Email: admin.Email, Nom: admin.Nom, Prenom: admin.Prenom}
			case models.RoleLivreur:
				livreur, err := livreurs.GetByID(r.Context(), id)
				if err != nil {
					unauthorized(w, "Utilisateur non trouvé")
					return
				}
				actor = &Actor{ID: livreur.ID, Role: livreur.Role, Email: livreur.Email, Nom: livreur.Nom, Prenom: livreur.Prenom}
			default:
				unauthorized(w, "Rôle non reconnu")
				return
			}

			ctx := context.WithValue(r.Context(), ActorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly restreint une route aux acteurs dont le rôle est admin.
// Un livreur authentifié reçoit 403, pas 401.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || actor.Role != models.RoleAdmin {
			writeJSONError(w, http.StatusForbidden, "Accès réservé aux administrateurs")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActorFromContext extrait l'acteur attaché par Protect.
func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(ActorContextKey).(*Actor)
	return actor, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusUnauthorized, message)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": message})
}
