package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media regroupe les visuels d'un produit.
type Media struct {
	Image []string `bson:"image,omitempty" json:"image,omitempty"`
}

// Produit est un article du catalogue.
type Produit struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Nom         string               `bson:"nom" json:"nom" validate:"required"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Prix        float64              `bson:"prix" json:"prix" validate:"gte=0"`
	Stock       int                  `bson:"stock" json:"stock" validate:"gte=0"`
	Categories  []primitive.ObjectID `bson:"categories,omitempty" json:"categories,omitempty"`
	Media       Media                `bson:"media,omitempty" json:"media,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ProduitDetail est la vue de lecture d'un produit, avec ses catégories
// résolues en documents complets.
type ProduitDetail struct {
	ID          primitive.ObjectID `json:"id"`
	Nom         string             `json:"nom"`
	Description string             `json:"description,omitempty"`
	Prix        float64            `json:"prix"`
	Stock       int                `json:"stock"`
	Categories  []Categorie        `json:"categories"`
	Media       Media              `json:"media,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// Categorie classe les produits. Le nom est unique.
type Categorie struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Nom         string             `bson:"nom" json:"nom" validate:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
