package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrTokenInvalide couvre indifféremment un token expiré, mal formé ou
// signé avec une autre clé. Le détail n'est pas exposé au client.
var ErrTokenInvalide = errors.New("token invalide")

// Claims embarquées dans le token : identifiant de l'acteur et son rôle.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.StandardClaims
}

// TokenService émet et vérifie les tokens de session signés HS256.
// Les tokens sont sans état : aucune révocation côté serveur, la
// déconnexion est une suppression côté client.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService construit le service avec une durée de vie d'un jour.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: 24 * time.Hour}
}

// Issue génère un token signé pour un acteur et son rôle.
func (s *TokenService) Issue(id, role string) (string, error) {
	claims := &Claims{
		ID:   id,
		Role: role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(s.ttl).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify contrôle la signature et l'expiration, et rend les claims.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalide
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalide
	}
	return claims, nil
}
