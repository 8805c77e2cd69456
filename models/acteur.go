package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rôles des acteurs authentifiés.
const (
	RoleAdmin   = "admin"
	RoleLivreur = "livreur"
)

// Statuts de compte (admins, livreurs, clients).
const (
	StatutActif    = "actif"
	StatutInactif  = "inactif"
	StatutSuspendu = "suspendu"
)

// Admin est un administrateur du back office. Le mot de passe n'est
// jamais sérialisé en JSON, seul le condensé bcrypt est stocké.
type Admin struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email      string             `bson:"email" json:"email"`
	Nom        string             `bson:"nom" json:"nom"`
	Prenom     string             `bson:"prenom" json:"prenom"`
	MotDePasse string             `bson:"motDePasse" json:"-"`
	Role       string             `bson:"role" json:"role"`
	Statut     string             `bson:"statut" json:"statut"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Livreur est un coursier rattaché à l'agence.
type Livreur struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email      string             `bson:"email" json:"email"`
	Nom        string             `bson:"nom" json:"nom"`
	Prenom     string             `bson:"prenom" json:"prenom"`
	Telephone  string             `bson:"telephone" json:"telephone"`
	MotDePasse string             `bson:"motDePasse" json:"-"`
	Role       string             `bson:"role" json:"role"`
	Statut     string             `bson:"statut" json:"statut"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
