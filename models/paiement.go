package models

// Modes de paiement acceptés.
const (
	ModeCarteBancaire = "carte_bancaire"
	ModeEspeces       = "especes"
	ModePaypal        = "paypal"
	ModeVirement      = "virement"
)

// Statuts de paiement.
const (
	PaiementPaye      = "paye"
	PaiementNonPaye   = "non_paye"
	PaiementEnAttente = "en_attente"
)

// Paiement est un document embarqué dans les clients et les commandes.
type Paiement struct {
	Mode   string `bson:"mode" json:"mode" validate:"required,oneof=carte_bancaire especes paypal virement"`
	Statut string `bson:"statut,omitempty" json:"statut,omitempty" validate:"omitempty,oneof=paye non_paye en_attente"`
}
