package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agence-livraison/models"
)

// ClientRepository persiste les clients.
type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection("clients")}
}

// Create insère un client en posant les valeurs par défaut du compte.
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	client.ID = primitive.NewObjectID()
	client.Contact.Email = strings.ToLower(strings.TrimSpace(client.Contact.Email))
	if client.Compte.DateCreation.IsZero() {
		client.Compte.DateCreation = time.Now().UTC()
	}
	if client.Compte.Statut == "" {
		client.Compte.Statut = models.StatutActif
	}
	if client.Compte.Preferences.Langue == "" {
		client.Compte.Preferences.Langue = "fr"
	}
	if client.Compte.Preferences.Devise == "" {
		client.Compte.Preferences.Devise = "EUR"
	}

	if _, err := r.coll.InsertOne(ctx, client); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateError{Field: "contact.email"}
		}
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var clients []models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	var client models.Client
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Types attendus des champs d'un client. Le bloc metadata reste libre.
var clientSchema = map[string]champKind{
	"identite":                   kindObject,
	"identite.civilite":          kindString,
	"identite.nom":               kindString,
	"identite.prenom":            kindString,
	"identite.dateNaissance":     kindDate | kindNullable,
	"contact":                    kindObject,
	"contact.email":              kindString,
	"contact.telephones":         kindArray,
	"contact.notification":       kindObject,
	"contact.notification.sms":   kindBool,
	"contact.notification.email": kindBool,
	"contact.notification.push":  kindBool,
	"adresses":                   kindArray,
	"paiement":                   kindObject | kindNullable,
	"paiement.mode":              kindString,
	"paiement.statut":            kindString,
	"compte":                     kindObject,
	"compte.dateCreation":        kindDate,
	"compte.statut":              kindString,
	"compte.dernierAcces":        kindDate | kindNullable,
	"compte.preferences":         kindObject,
	"compte.preferences.langue":  kindString,
	"compte.preferences.devise":  kindString,
	"metadata":                   kindObject,
}

// clientUpdateSet prépare le $set d'une mise à jour partielle : types
// confrontés au schéma, email normalisé comme à la création pour que
// l'unicité casse-insensible tienne aussi en mise à jour.
func clientUpdateSet(fields map[string]interface{}) (bson.M, error) {
	stripImmutable(fields)
	set, err := flattenSetValide(fields, clientSchema)
	if err != nil {
		return nil, err
	}
	if email, ok := set["contact.email"].(string); ok {
		set["contact.email"] = strings.ToLower(strings.TrimSpace(email))
	}
	return set, nil
}

// Update applique une mise à jour partielle en fusion profonde : les
// objets imbriqués (identite, contact, compte...) fusionnent champ par
// champ, un champ omis survit à la mise à jour.
func (r *ClientRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Client, error) {
	set, err := clientUpdateSet(fields)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var client models.Client
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&client)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateError{Field: "contact.email"}
		}
		return nil, err
	}
	return &client, nil
}

// Delete supprime le client. Les commandes qui le référencent ne sont
// ni supprimées ni modifiées : la référence devient simplement orpheline.
func (r *ClientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRepository) DeleteByEmail(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.coll.DeleteOne(ctx, bson.M{"contact.email": email})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
