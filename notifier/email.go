package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"agence-livraison/models"
)

// ClientSource résout le destinataire d'une notification.
type ClientSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
}

// EmailNotifier prévient le client par email lors d'un changement de
// statut, si ses préférences de notification l'autorisent. Sans clé API
// le notifier est désactivé et ne fait rien.
type EmailNotifier struct {
	client  *sendgrid.Client
	sender  string
	clients ClientSource
	logger  zerolog.Logger
	enabled bool
}

func NewEmailNotifier(apiKey, sender string, clients ClientSource, logger zerolog.Logger) *EmailNotifier {
	n := &EmailNotifier{sender: sender, clients: clients, logger: logger}
	if apiKey == "" {
		logger.Warn().Msg("SENDGRID_API_KEY absent, notifications email désactivées")
		return n
	}
	n.client = sendgrid.NewSendClient(apiKey)
	n.enabled = true
	return n
}

// NotifierStatut envoie l'email de changement de statut. Conçu pour être
// appelé dans une goroutine : toute erreur est journalisée, jamais
// remontée à l'appelant.
func (n *EmailNotifier) NotifierStatut(commande *models.Commande) {
	if !n.enabled {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := n.clients.GetByID(ctx, commande.ClientID)
	if err != nil {
		n.logger.Warn().Err(err).Str("commande", commande.ID.Hex()).Msg("client introuvable pour notification")
		return
	}
	if !client.Contact.Notification.Email || client.Contact.Email == "" {
		return
	}

	libelle := libelleStatut(commande.Statut)
	subject := fmt.Sprintf("Votre commande est %s", libelle)
	body := fmt.Sprintf(
		"Bonjour %s,\n\nVotre commande %s est maintenant %s.\n\nMerci de votre confiance,\nAgence de Livraison",
		client.Identite.Prenom, commande.ID.Hex(), libelle,
	)

	from := mail.NewEmail("Agence de Livraison", n.sender)
	to := mail.NewEmail(client.Identite.Prenom+" "+client.Identite.Nom, client.Contact.Email)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		n.logger.Warn().Err(err).Str("email", client.Contact.Email).Msg("envoi email impossible")
		return
	}
	if resp.StatusCode >= 400 {
		n.logger.Warn().Int("status", resp.StatusCode).Str("email", client.Contact.Email).Msg("envoi email refusé")
	}
}

func libelleStatut(statut string) string {
	switch statut {
	case models.CommandeEnAttente:
		return "en attente"
	case models.CommandeExpediee:
		return "expédiée"
	case models.CommandeLivree:
		return "livrée"
	case models.CommandeAnnulee:
		return "annulée"
	}
	return statut
}
