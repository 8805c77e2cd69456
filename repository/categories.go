package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agence-livraison/models"
)

// CategorieRepository persiste les catégories de produits.
type CategorieRepository struct {
	coll *mongo.Collection
}

func NewCategorieRepository(db *mongo.Database) *CategorieRepository {
	return &CategorieRepository{coll: db.Collection("categories")}
}

func (r *CategorieRepository) Create(ctx context.Context, categorie *models.Categorie) (*models.Categorie, error) {
	now := time.Now().UTC()
	categorie.ID = primitive.NewObjectID()
	categorie.CreatedAt = now
	categorie.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, categorie); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateError{Field: "nom"}
		}
		return nil, err
	}
	return categorie, nil
}

func (r *CategorieRepository) List(ctx context.Context) ([]models.Categorie, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var categories []models.Categorie
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategorieRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Categorie, error) {
	var categorie models.Categorie
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&categorie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &categorie, nil
}

var categorieSchema = map[string]champKind{
	"nom":         kindString,
	"description": kindString,
}

func (r *CategorieRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Categorie, error) {
	stripImmutable(fields, "createdAt", "updatedAt")
	set, err := flattenSetValide(fields, categorieSchema)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = time.Now().UTC()

	var categorie models.Categorie
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&categorie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateError{Field: "nom"}
		}
		return nil, err
	}
	return &categorie, nil
}

func (r *CategorieRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
