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

// ProduitRepository persiste les produits du catalogue. Les lectures
// résolvent les catégories référencées en un seul lot $in, jointure
// explicite plutôt qu'association paresseuse.
type ProduitRepository struct {
	produits   *mongo.Collection
	categories *mongo.Collection
}

func NewProduitRepository(db *mongo.Database) *ProduitRepository {
	return &ProduitRepository{
		produits:   db.Collection("produits"),
		categories: db.Collection("categories"),
	}
}

func (r *ProduitRepository) Create(ctx context.Context, produit *models.Produit) (*models.Produit, error) {
	now := time.Now().UTC()
	produit.ID = primitive.NewObjectID()
	produit.CreatedAt = now
	produit.UpdatedAt = now

	if _, err := r.produits.InsertOne(ctx, produit); err != nil {
		return nil, err
	}
	return produit, nil
}

func (r *ProduitRepository) List(ctx context.Context) ([]models.ProduitDetail, error) {
	cursor, err := r.produits.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var produits []models.Produit
	if err := cursor.All(ctx, &produits); err != nil {
		return nil, err
	}
	return r.populate(ctx, produits)
}

func (r *ProduitRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProduitDetail, error) {
	var produit models.Produit
	err := r.produits.FindOne(ctx, bson.M{"_id": id}).Decode(&produit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	details, err := r.populate(ctx, []models.Produit{produit})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Types attendus des champs d'un produit.
var produitSchema = map[string]champKind{
	"nom":         kindString,
	"description": kindString,
	"prix":        kindNumber,
	"stock":       kindInt,
	"categories":  kindArray,
	"media":       kindObject,
	"media.image": kindArray,
}

func (r *ProduitRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Produit, error) {
	stripImmutable(fields, "createdAt", "updatedAt")

	// Les références de catégories arrivent en hexadécimal dans le JSON.
	if raw, ok := fields["categories"].([]interface{}); ok {
		ids := make([]primitive.ObjectID, 0, len(raw))
		for _, v := range raw {
			hex, _ := v.(string)
			oid, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				return nil, &ValidationError{Field: "categories", Reason: "identifiant invalide"}
			}
			ids = append(ids, oid)
		}
		fields["categories"] = ids
	}

	set, err := flattenSetValide(fields, produitSchema)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = time.Now().UTC()

	var produit models.Produit
	err = r.produits.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&produit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &produit, nil
}

func (r *ProduitRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.produits.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// populate résout les catégories de chaque produit. Une catégorie
// supprimée disparaît simplement de la vue.
func (r *ProduitRepository) populate(ctx context.Context, produits []models.Produit) ([]models.ProduitDetail, error) {
	idSet := map[primitive.ObjectID]struct{}{}
	for _, p := range produits {
		for _, id := range p.Categories {
			idSet[id] = struct{}{}
		}
	}

	byID := map[primitive.ObjectID]models.Categorie{}
	if len(idSet) > 0 {
		ids := make([]primitive.ObjectID, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		cursor, err := r.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		var categories []models.Categorie
		if err := cursor.All(ctx, &categories); err != nil {
			return nil, err
		}
		for _, c := range categories {
			byID[c.ID] = c
		}
	}

	details := make([]models.ProduitDetail, 0, len(produits))
	for _, p := range produits {
		resolved := make([]models.Categorie, 0, len(p.Categories))
		for _, id := range p.Categories {
			if c, ok := byID[id]; ok {
				resolved = append(resolved, c)
			}
		}
		details = append(details, models.ProduitDetail{
			ID:          p.ID,
			Nom:         p.Nom,
			Description: p.Description,
			Prix:        p.Prix,
			Stock:       p.Stock,
			Categories:  resolved,
			Media:       p.Media,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return details, nil
}
