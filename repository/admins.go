package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"agence-livraison/auth"
	"agence-livraison/models"
)

// AdminRepository persiste les administrateurs.
type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection("admins")}
}

// Create insère un admin en hachant son mot de passe. L'email est
// normalisé en minuscules comme dans le reste des collections d'acteurs.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin, motDePasse string) (*models.Admin, error) {
	digest, err := auth.HashPassword(motDePasse)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin.ID = primitive.NewObjectID()
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	admin.MotDePasse = digest
	admin.Role = models.RoleAdmin
	if admin.Statut == "" {
		admin.Statut = models.StatutActif
	}
	admin.CreatedAt = now
	admin.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateError{Field: "email"}
		}
		return nil, err
	}
	return admin, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var admin models.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var admin models.Admin
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
