package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produit le condensé bcrypt d'un mot de passe en clair.
// L'échec fait échouer la sauvegarde appelante.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword compare un mot de passe en clair au condensé stocké.
// Un condensé mal formé rend false, jamais de panique.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
