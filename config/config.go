package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config regroupe la configuration du serveur, chargée depuis
// l'environnement (ou un fichier .env en développement).
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	SendgridAPIKey string
	EmailSender    string
	Env            string

	// Compte admin initial, créé au démarrage s'il n'existe pas encore.
	AdminEmail      string
	AdminMotDePasse string
}

// Load lit la configuration depuis les variables d'environnement.
// Un fichier .env absent n'est pas une erreur.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "5000"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "agence_livraison"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		SendgridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		EmailSender:     getEnv("EMAIL_SENDER", "no-reply@agence-livraison.ma"),
		Env:             getEnv("ENV", "development"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminMotDePasse: os.Getenv("ADMIN_MOT_DE_PASSE"),
	}
}

// IsDevelopment indique si le serveur tourne en mode développement.
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
