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

	"agence-livraison/auth"
	"agence-livraison/models"
)

// LivreurRepository persiste les livreurs.
type LivreurRepository struct {
	coll *mongo.Collection
}

func NewLivreurRepository(db *mongo.Database) *LivreurRepository {
	return &LivreurRepository{coll: db.Collection("livreurs")}
}

func (r *LivreurRepository) Create(ctx context.Context, livreur *models.Livreur, motDePasse string) (*models.Livreur, error) {
	digest, err := auth.HashPassword(motDePasse)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	livreur.ID = primitive.NewObjectID()
	livreur.Email = strings.ToLower(strings.TrimSpace(livreur.Email))
	livreur.MotDePasse = digest
	livreur.Role = models.RoleLivreur
	if livreur.Statut == "" {
		livreur.Statut = models.StatutActif
	}
	livreur.CreatedAt = now
	livreur.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, livreur); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateError{Field: "email"}
		}
		return nil, err
	}
	return livreur, nil
}

func (r *LivreurRepository) List(ctx context.Context) ([]models.Livreur, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var livreurs []models.Livreur
	if err := cursor.All(ctx, &livreurs); err != nil {
		return nil, err
	}
	return livreurs, nil
}

func (r *LivreurRepository) GetByEmail(ctx context.Context, email string) (*models.Livreur, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var livreur models.Livreur
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&livreur)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &livreur, nil
}

func (r *LivreurRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Livreur, error) {
	var livreur models.Livreur
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&livreur)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &livreur, nil
}

// Types attendus des champs d'un livreur. Le rôle et les horodatages
// sont retirés du payload avant cette confrontation.
var livreurSchema = map[string]champKind{
	"email":      kindString,
	"nom":        kindString,
	"prenom":     kindString,
	"telephone":  kindString,
	"motDePasse": kindString,
	"statut":     kindString,
}

// Update applique une mise à jour partielle. Le mot de passe n'est haché
// que si la clé motDePasse figure dans le payload : un condensé déjà
// stocké n'est jamais re-haché lors d'une mise à jour d'autres champs.
func (r *LivreurRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Livreur, error) {
	stripImmutable(fields, "role", "createdAt", "updatedAt")

	if raw, ok := fields["motDePasse"]; ok {
		plain, _ := raw.(string)
		if plain == "" {
			delete(fields, "motDePasse")
		} else {
			digest, err := auth.HashPassword(plain)
			if err != nil {
				return nil, err
			}
			fields["motDePasse"] = digest
		}
	}
	if email, ok := fields["email"].(string); ok {
		fields["email"] = strings.ToLower(strings.TrimSpace(email))
	}

	set, err := flattenSetValide(fields, livreurSchema)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = time.Now().UTC()

	var livreur models.Livreur
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&livreur)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateError{Field: "email"}
		}
		return nil, err
	}
	return &livreur, nil
}

func (r *LivreurRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
