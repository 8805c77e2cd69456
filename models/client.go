package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Telephone est un numéro rattaché au contact d'un client.
type Telephone struct {
	Type         string `bson:"type,omitempty" json:"type,omitempty" validate:"omitempty,oneof=mobile fixe professionnel"`
	Numero       string `bson:"numero" json:"numero" validate:"required"`
	EstPrincipal bool   `bson:"estPrincipal,omitempty" json:"estPrincipal,omitempty"`
}

// Notification porte les préférences de notification du client.
type Notification struct {
	SMS   bool `bson:"sms,omitempty" json:"sms,omitempty"`
	Email bool `bson:"email,omitempty" json:"email,omitempty"`
	Push  bool `bson:"push,omitempty" json:"push,omitempty"`
}

// Identite regroupe l'état civil du client.
type Identite struct {
	Civilite      string     `bson:"civilite,omitempty" json:"civilite,omitempty" validate:"omitempty,oneof=M Mme"`
	Nom           string     `bson:"nom" json:"nom" validate:"required"`
	Prenom        string     `bson:"prenom" json:"prenom" validate:"required"`
	DateNaissance *time.Time `bson:"dateNaissance,omitempty" json:"dateNaissance,omitempty"`
}

// Contact regroupe les coordonnées du client. L'email est unique.
type Contact struct {
	Email        string       `bson:"email" json:"email" validate:"required,email"`
	Telephones   []Telephone  `bson:"telephones,omitempty" json:"telephones,omitempty" validate:"omitempty,dive"`
	Notification Notification `bson:"notification,omitempty" json:"notification,omitempty"`
}

// Preferences de compte (langue d'affichage, devise).
type Preferences struct {
	Langue string `bson:"langue,omitempty" json:"langue,omitempty"`
	Devise string `bson:"devise,omitempty" json:"devise,omitempty"`
}

// Compte porte le cycle de vie du compte client.
type Compte struct {
	DateCreation time.Time   `bson:"dateCreation" json:"dateCreation"`
	Statut       string      `bson:"statut" json:"statut" validate:"omitempty,oneof=actif inactif suspendu"`
	DernierAcces *time.Time  `bson:"dernierAcces,omitempty" json:"dernierAcces,omitempty"`
	Preferences  Preferences `bson:"preferences,omitempty" json:"preferences,omitempty"`
}

// Client est un destinataire de livraisons. Il ne s'authentifie pas :
// seuls les admins et les livreurs portent des identifiants.
type Client struct {
	ID       primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	Identite Identite               `bson:"identite" json:"identite"`
	Contact  Contact                `bson:"contact" json:"contact"`
	Adresses []Adresse              `bson:"adresses,omitempty" json:"adresses,omitempty" validate:"omitempty,dive"`
	Paiement *Paiement              `bson:"paiement,omitempty" json:"paiement,omitempty"`
	Compte   Compte                 `bson:"compte" json:"compte"`
	Metadata map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
}
