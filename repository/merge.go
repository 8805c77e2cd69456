package repository

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// champKind décrit le type attendu d'un chemin pointé dans un payload de
// mise à jour partielle. Le drapeau kindNullable autorise la valeur null.
type champKind uint8

const (
	kindString champKind = iota
	kindNumber
	kindInt
	kindBool
	kindDate
	kindID
	kindArray
	kindObject
)

const kindNullable champKind = 1 << 6

// flattenSet convertit un payload partiel en chemins pointés pour $set,
// de sorte que les objets imbriqués fusionnent champ par champ au lieu
// d'être remplacés en bloc. Les tableaux et les scalaires, eux, sont
// remplacés tels quels.
func flattenSet(fields map[string]interface{}) bson.M {
	set := bson.M{}
	flattenInto(set, "", fields)
	return set
}

func flattenInto(set bson.M, prefix string, fields map[string]interface{}) {
	for key, value := range fields {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flattenInto(set, path, nested)
			continue
		}
		set[path] = value
	}
}

// flattenSetValide aplatit le payload puis confronte chaque chemin au
// schéma de la collection : une valeur d'un type incompatible avec le
// champ stocké est refusée avant toute écriture, sinon le document
// deviendrait indécodable à la lecture suivante. Les chemins hors schéma
// (metadata, clés libres) passent tels quels.
func flattenSetValide(fields map[string]interface{}, schema map[string]champKind) (bson.M, error) {
	set := flattenSet(fields)
	for path, value := range set {
		if kind, ok := schema[path]; ok {
			converted, ok := validerChamp(kind, value)
			if !ok {
				return nil, &ValidationError{Field: path, Reason: "type invalide"}
			}
			set[path] = converted
			continue
		}
		if parent, ok := parentScalaire(schema, path); ok {
			return nil, &ValidationError{Field: parent, Reason: "type invalide"}
		}
	}
	return set, nil
}

// parentScalaire remonte les préfixes d'un chemin inconnu du schéma. Un
// sous-champ d'un objet déclaré est toléré ; un sous-champ d'un scalaire
// déclaré signale un objet écrit à la place d'une valeur simple.
func parentScalaire(schema map[string]champKind, path string) (string, bool) {
	for {
		i := strings.LastIndexByte(path, '.')
		if i < 0 {
			return "", false
		}
		path = path[:i]
		if kind, ok := schema[path]; ok {
			return path, kind&^kindNullable != kindObject
		}
	}
}

func validerChamp(kind champKind, value interface{}) (interface{}, bool) {
	if value == nil {
		return nil, kind&kindNullable != 0
	}
	switch kind &^ kindNullable {
	case kindString:
		_, ok := value.(string)
		return value, ok
	case kindNumber:
		switch value.(type) {
		case float64, float32, int, int32, int64:
			return value, true
		}
	case kindInt:
		switch v := value.(type) {
		case int, int32, int64:
			return value, true
		case float64:
			if v == math.Trunc(v) {
				return value, true
			}
		}
	case kindBool:
		_, ok := value.(bool)
		return value, ok
	case kindDate:
		switch v := value.(type) {
		case time.Time:
			return v, true
		case string:
			for _, layout := range []string{time.RFC3339, "2006-01-02"} {
				if t, err := time.Parse(layout, v); err == nil {
					return t, true
				}
			}
		}
	case kindID:
		_, ok := value.(primitive.ObjectID)
		return value, ok
	case kindArray:
		switch value.(type) {
		case []interface{}, []bson.M, []string, []primitive.ObjectID, primitive.A:
			return value, true
		}
	case kindObject:
		// les objets du payload sont aplatis avant d'arriver ici : une
		// valeur restante à ce chemin est un scalaire mal placé
		return nil, false
	}
	return nil, false
}

// stripImmutable retire du payload les champs que l'API ne laisse jamais
// réécrire directement.
func stripImmutable(fields map[string]interface{}, keys ...string) {
	delete(fields, "id")
	delete(fields, "_id")
	for _, key := range keys {
		delete(fields, key)
	}
}
