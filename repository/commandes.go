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

// CommandeRepository persiste les commandes et porte la jointure de
// lecture : client, produits et livreur référencés sont récupérés par
// lots $in puis assemblés, au lieu d'un populate implicite.
type CommandeRepository struct {
	commandes *mongo.Collection
	clients   *mongo.Collection
	produits  *mongo.Collection
	livreurs  *mongo.Collection
}

func NewCommandeRepository(db *mongo.Database) *CommandeRepository {
	return &CommandeRepository{
		commandes: db.Collection("commandes"),
		clients:   db.Collection("clients"),
		produits:  db.Collection("produits"),
		livreurs:  db.Collection("livreurs"),
	}
}

// Create insère une commande. Le client référencé doit exister au moment
// de la création ; la référence reste faible ensuite (pas de cascade).
func (r *CommandeRepository) Create(ctx context.Context, commande *models.Commande) (*models.Commande, error) {
	count, err := r.clients.CountDocuments(ctx, bson.M{"_id": commande.ClientID})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, &ValidationError{Field: "client_id", Reason: "client inexistant"}
	}

	commande.ID = primitive.NewObjectID()
	if commande.DateCommande.IsZero() {
		commande.DateCommande = time.Now().UTC()
	}
	if commande.Statut == "" {
		commande.Statut = models.CommandeEnAttente
	}

	if _, err := r.commandes.InsertOne(ctx, commande); err != nil {
		return nil, err
	}
	return commande, nil
}

func (r *CommandeRepository) List(ctx context.Context) ([]models.CommandeDetail, error) {
	return r.find(ctx, bson.M{})
}

// ListByLivreur rend les commandes affectées à un livreur donné.
func (r *CommandeRepository) ListByLivreur(ctx context.Context, livreurID primitive.ObjectID) ([]models.CommandeDetail, error) {
	return r.find(ctx, bson.M{"livreur_id": livreurID})
}

func (r *CommandeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CommandeDetail, error) {
	var commande models.Commande
	err := r.commandes.FindOne(ctx, bson.M{"_id": id}).Decode(&commande)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	details, err := r.populate(ctx, []models.Commande{commande})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Types attendus des champs d'une commande, confrontés aux payloads de
// mise à jour partielle avant écriture.
var commandeSchema = map[string]champKind{
	"client_id":  kindID,
	"livreur_id": kindID | kindNullable,
	"produits":   kindArray,
	"statut":     kindString,

	"adresse_livraison":                           kindObject,
	"adresse_livraison.alias":                     kindString,
	"adresse_livraison.type":                      kindString,
	"adresse_livraison.ligne1":                    kindString,
	"adresse_livraison.ligne2":                    kindString,
	"adresse_livraison.codePostal":                kindString,
	"adresse_livraison.ville":                     kindString,
	"adresse_livraison.pays":                      kindString,
	"adresse_livraison.instructions":              kindString,
	"adresse_livraison.horairesLivraison":         kindObject | kindNullable,
	"adresse_livraison.horairesLivraison.jours":   kindArray,
	"adresse_livraison.horairesLivraison.creneau": kindString,

	"paiement":        kindObject | kindNullable,
	"paiement.mode":   kindString,
	"paiement.statut": kindString,
}

// commandeUpdateDoc construit le document de mise à jour à partir d'un
// payload partiel : références hexadécimales converties, lignes produits
// normalisées, types confrontés au schéma. Un livreur_id nul désaffecte
// le livreur ($unset) au lieu d'échouer en conversion.
func commandeUpdateDoc(fields map[string]interface{}) (bson.M, error) {
	stripImmutable(fields, "date_commande")

	update := bson.M{}
	if raw, present := fields["livreur_id"]; present && raw == nil {
		delete(fields, "livreur_id")
		update["$unset"] = bson.M{"livreur_id": ""}
	}

	for _, key := range []string{"client_id", "livreur_id"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		hex, _ := raw.(string)
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, &ValidationError{Field: key, Reason: "identifiant invalide"}
		}
		fields[key] = oid
	}
	if raw, ok := fields["produits"].([]interface{}); ok {
		lignes, err := convertLignes(raw)
		if err != nil {
			return nil, err
		}
		fields["produits"] = lignes
	}
	if statut, ok := fields["statut"].(string); ok && !models.StatutCommandeValide(statut) {
		return nil, &ValidationError{Field: "statut", Reason: "statut inconnu"}
	}

	set, err := flattenSetValide(fields, commandeSchema)
	if err != nil {
		return nil, err
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	return update, nil
}

// Update applique une mise à jour partielle en fusion profonde.
func (r *CommandeRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Commande, error) {
	update, err := commandeUpdateDoc(fields)
	if err != nil {
		return nil, err
	}
	if len(update) == 0 {
		return r.getRaw(ctx, id)
	}

	var commande models.Commande
	err = r.commandes.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&commande)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &commande, nil
}

// UpdateStatut écrit le nouveau statut sans contrainte de transition :
// n'importe quel statut du vocabulaire peut suivre n'importe quel autre,
// comportement assumé du back office.
func (r *CommandeRepository) UpdateStatut(ctx context.Context, id primitive.ObjectID, statut string) (*models.Commande, error) {
	var commande models.Commande
	err := r.commandes.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"statut": statut}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&commande)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &commande, nil
}

func (r *CommandeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.commandes.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CommandeRepository) getRaw(ctx context.Context, id primitive.ObjectID) (*models.Commande, error) {
	var commande models.Commande
	err := r.commandes.FindOne(ctx, bson.M{"_id": id}).Decode(&commande)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &commande, nil
}

func (r *CommandeRepository) find(ctx context.Context, filter bson.M) ([]models.CommandeDetail, error) {
	cursor, err := r.commandes.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var commandes []models.Commande
	if err := cursor.All(ctx, &commandes); err != nil {
		return nil, err
	}
	return r.populate(ctx, commandes)
}

// populate résout les références d'un lot de commandes : client complet,
// produits en projection {nom, prix}, livreur en projection {nom, prenom}.
// Un référent supprimé se résout en null plutôt qu'en erreur.
func (r *CommandeRepository) populate(ctx context.Context, commandes []models.Commande) ([]models.CommandeDetail, error) {
	clientIDs := map[primitive.ObjectID]struct{}{}
	produitIDs := map[primitive.ObjectID]struct{}{}
	livreurIDs := map[primitive.ObjectID]struct{}{}
	for _, c := range commandes {
		clientIDs[c.ClientID] = struct{}{}
		for _, ligne := range c.Produits {
			produitIDs[ligne.ProduitID] = struct{}{}
		}
		if c.LivreurID != nil {
			livreurIDs[*c.LivreurID] = struct{}{}
		}
	}

	clients := map[primitive.ObjectID]*models.Client{}
	if len(clientIDs) > 0 {
		cursor, err := r.clients.Find(ctx, bson.M{"_id": bson.M{"$in": keys(clientIDs)}})
		if err != nil {
			return nil, err
		}
		var docs []models.Client
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		for i := range docs {
			clients[docs[i].ID] = &docs[i]
		}
	}

	produits := map[primitive.ObjectID]*models.ProduitResume{}
	if len(produitIDs) > 0 {
		cursor, err := r.produits.Find(ctx,
			bson.M{"_id": bson.M{"$in": keys(produitIDs)}},
			options.Find().SetProjection(bson.M{"nom": 1, "prix": 1}),
		)
		if err != nil {
			return nil, err
		}
		var docs []models.Produit
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		for _, p := range docs {
			produits[p.ID] = &models.ProduitResume{ID: p.ID, Nom: p.Nom, Prix: p.Prix}
		}
	}

	livreurs := map[primitive.ObjectID]*models.LivreurResume{}
	if len(livreurIDs) > 0 {
		cursor, err := r.livreurs.Find(ctx,
			bson.M{"_id": bson.M{"$in": keys(livreurIDs)}},
			options.Find().SetProjection(bson.M{"nom": 1, "prenom": 1}),
		)
		if err != nil {
			return nil, err
		}
		var docs []models.Livreur
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		for _, l := range docs {
			livreurs[l.ID] = &models.LivreurResume{ID: l.ID, Nom: l.Nom, Prenom: l.Prenom}
		}
	}

	details := make([]models.CommandeDetail, 0, len(commandes))
	for _, c := range commandes {
		lignes := make([]models.LigneCommandeDetail, 0, len(c.Produits))
		for _, ligne := range c.Produits {
			lignes = append(lignes, models.LigneCommandeDetail{
				Produit:  produits[ligne.ProduitID],
				Quantite: ligne.Quantite,
			})
		}
		detail := models.CommandeDetail{
			ID:               c.ID,
			Client:           clients[c.ClientID],
			Produits:         lignes,
			DateCommande:     c.DateCommande,
			Statut:           c.Statut,
			AdresseLivraison: c.AdresseLivraison,
			Paiement:         c.Paiement,
		}
		if c.LivreurID != nil {
			detail.Livreur = livreurs[*c.LivreurID]
		}
		details = append(details, detail)
	}
	return details, nil
}

func convertLignes(raw []interface{}) ([]bson.M, error) {
	lignes := make([]bson.M, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, &ValidationError{Field: "produits", Reason: "ligne invalide"}
		}
		hex, _ := m["produit_id"].(string)
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, &ValidationError{Field: "produits", Reason: "identifiant produit invalide"}
		}
		quantite, _ := m["quantite"].(float64)
		if quantite <= 0 {
			return nil, &ValidationError{Field: "produits", Reason: "quantité invalide"}
		}
		lignes = append(lignes, bson.M{"produit_id": oid, "quantite": int(quantite)})
	}
	return lignes, nil
}

func keys(set map[primitive.ObjectID]struct{}) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
