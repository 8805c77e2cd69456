package models

// Types d'adresse acceptés.
const (
	AdresseLivraison   = "livraison"
	AdresseFacturation = "facturation"
	AdresseLesDeux     = "les_deux"
)

// HorairesLivraison précise les créneaux où le client peut être livré.
type HorairesLivraison struct {
	Jours   []string `bson:"jours,omitempty" json:"jours,omitempty"`
	Creneau string   `bson:"creneau,omitempty" json:"creneau,omitempty"`
}

// Adresse est un document embarqué, sans identifiant propre. Une commande
// en conserve sa propre copie au moment de la création.
type Adresse struct {
	Alias             string             `bson:"alias,omitempty" json:"alias,omitempty"`
	Type              string             `bson:"type,omitempty" json:"type,omitempty" validate:"omitempty,oneof=livraison facturation les_deux"`
	Ligne1            string             `bson:"ligne1" json:"ligne1" validate:"required"`
	Ligne2            string             `bson:"ligne2,omitempty" json:"ligne2,omitempty"`
	CodePostal        string             `bson:"codePostal" json:"codePostal" validate:"required"`
	Ville             string             `bson:"ville" json:"ville" validate:"required"`
	Pays              string             `bson:"pays,omitempty" json:"pays,omitempty"`
	Instructions      string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	HorairesLivraison *HorairesLivraison `bson:"horairesLivraison,omitempty" json:"horairesLivraison,omitempty"`
}
