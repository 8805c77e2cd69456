package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts de commande. Vocabulaire canonique sans accents : les variantes
// historiques ("en attente", "expédiée", ...) ne sont pas acceptées.
const (
	CommandeEnAttente = "en_attente"
	CommandeExpediee  = "expediee"
	CommandeLivree    = "livree"
	CommandeAnnulee   = "annulee"
)

// StatutCommandeValide vérifie l'appartenance au vocabulaire canonique.
// Aucun ordre de transition n'est imposé entre les statuts.
func StatutCommandeValide(statut string) bool {
	switch statut {
	case CommandeEnAttente, CommandeExpediee, CommandeLivree, CommandeAnnulee:
		return true
	}
	return false
}

// LigneCommande référence un produit commandé et sa quantité.
type LigneCommande struct {
	ProduitID primitive.ObjectID `bson:"produit_id" json:"produit_id"`
	Quantite  int                `bson:"quantite" json:"quantite" validate:"gt=0"`
}

// Commande telle que stockée : les références client, produits et livreur
// sont des identifiants faibles, résolus seulement en lecture. L'adresse
// de livraison est une copie propre à la commande.
type Commande struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	ClientID         primitive.ObjectID  `bson:"client_id" json:"client_id"`
	Produits         []LigneCommande     `bson:"produits" json:"produits" validate:"omitempty,dive"`
	DateCommande     time.Time           `bson:"date_commande" json:"date_commande"`
	Statut           string              `bson:"statut" json:"statut" validate:"omitempty,oneof=en_attente expediee livree annulee"`
	AdresseLivraison Adresse             `bson:"adresse_livraison" json:"adresse_livraison" validate:"required"`
	Paiement         *Paiement           `bson:"paiement,omitempty" json:"paiement,omitempty"`
	LivreurID        *primitive.ObjectID `bson:"livreur_id,omitempty" json:"livreur_id,omitempty"`
}

// ProduitResume est la projection {nom, prix} d'un produit référencé.
type ProduitResume struct {
	ID   primitive.ObjectID `json:"id"`
	Nom  string             `json:"nom"`
	Prix float64            `json:"prix"`
}

// LivreurResume est la projection {nom, prenom} du livreur affecté.
type LivreurResume struct {
	ID     primitive.ObjectID `json:"id"`
	Nom    string             `json:"nom"`
	Prenom string             `json:"prenom"`
}

// LigneCommandeDetail reprend une ligne avec son produit résolu. Le champ
// garde le nom produit_id comme dans le document stocké ; un produit
// supprimé se résout en null.
type LigneCommandeDetail struct {
	Produit  *ProduitResume `json:"produit_id"`
	Quantite int            `json:"quantite"`
}

// CommandeDetail est la vue de lecture d'une commande, références
// résolues. Un référent manquant (client ou livreur supprimé) vaut null.
type CommandeDetail struct {
	ID               primitive.ObjectID    `json:"id"`
	Client           *Client               `json:"client_id"`
	Produits         []LigneCommandeDetail `json:"produits"`
	DateCommande     time.Time             `json:"date_commande"`
	Statut           string                `json:"statut"`
	AdresseLivraison Adresse               `json:"adresse_livraison"`
	Paiement         *Paiement             `json:"paiement,omitempty"`
	Livreur          *LivreurResume        `json:"livreur_id"`
}
