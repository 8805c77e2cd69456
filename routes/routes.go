package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"agence-livraison/controllers"
	"agence-livraison/middleware"
)

// RegisterRoutes câble la table de routage. Les CRUD clients, produits,
// catégories et commandes sont publics, consommés par le tableau de bord ;
// les surfaces admin et livreur passent par le middleware protect.
func RegisterRoutes(
	router *mux.Router,
	protect mux.MiddlewareFunc,
	adminCtrl *controllers.AdminController,
	livreurCtrl *controllers.LivreurController,
	clientCtrl *controllers.ClientController,
	produitCtrl *controllers.ProduitController,
	categorieCtrl *controllers.CategorieController,
	commandeCtrl *controllers.CommandeController,
) {
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"API Agence de Livraison"}`))
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Admin : login public, création réservée aux admins.
	api.HandleFunc("/admin/login", adminCtrl.Login).Methods("POST")
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(protect, middleware.AdminOnly)
	admin.HandleFunc("", adminCtrl.Create).Methods("POST")

	// Clients.
	api.HandleFunc("/clients", clientCtrl.Create).Methods("POST")
	api.HandleFunc("/clients", clientCtrl.List).Methods("GET")
	api.HandleFunc("/clients/email/{email}", clientCtrl.DeleteByEmail).Methods("DELETE")
	api.HandleFunc("/clients/{id}", clientCtrl.GetByID).Methods("GET")
	api.HandleFunc("/clients/{id}", clientCtrl.Update).Methods("PUT")
	api.HandleFunc("/clients/{id}", clientCtrl.Delete).Methods("DELETE")

	// Produits.
	api.HandleFunc("/produits", produitCtrl.Create).Methods("POST")
	api.HandleFunc("/produits", produitCtrl.List).Methods("GET")
	api.HandleFunc("/produits/{id}", produitCtrl.GetByID).Methods("GET")
	api.HandleFunc("/produits/{id}", produitCtrl.Update).Methods("PUT")
	api.HandleFunc("/produits/{id}", produitCtrl.Delete).Methods("DELETE")

	// Catégories.
	api.HandleFunc("/categories", categorieCtrl.Create).Methods("POST")
	api.HandleFunc("/categories", categorieCtrl.List).Methods("GET")
	api.HandleFunc("/categories/{id}", categorieCtrl.GetByID).Methods("GET")
	api.HandleFunc("/categories/{id}", categorieCtrl.Update).Methods("PUT")
	api.HandleFunc("/categories/{id}", categorieCtrl.Delete).Methods("DELETE")

	// Commandes. Les routes statut et livreur précèdent {id}.
	api.HandleFunc("/commandes", commandeCtrl.Create).Methods("POST")
	api.HandleFunc("/commandes", commandeCtrl.List).Methods("GET")
	api.HandleFunc("/commandes/statut/{id}", commandeCtrl.UpdateStatut).Methods("PUT")
	api.HandleFunc("/commandes/livreur/{livreurId}", commandeCtrl.ListByLivreur).Methods("GET")
	api.HandleFunc("/commandes/{id}", commandeCtrl.GetByID).Methods("GET")
	api.HandleFunc("/commandes/{id}", commandeCtrl.Update).Methods("PUT")
	api.HandleFunc("/commandes/{id}", commandeCtrl.Delete).Methods("DELETE")

	// Livreurs : login public, le reste protégé, certaines routes
	// réservées aux admins.
	api.HandleFunc("/livreurs/login", livreurCtrl.Login).Methods("POST")

	livreursAdmin := api.PathPrefix("/livreurs").Subrouter()
	livreursAdmin.Use(protect, middleware.AdminOnly)
	livreursAdmin.HandleFunc("/create", livreurCtrl.Create).Methods("POST")
	livreursAdmin.HandleFunc("", livreurCtrl.List).Methods("GET")
	livreursAdmin.HandleFunc("/{id}", livreurCtrl.Delete).Methods("DELETE")

	livreurs := api.PathPrefix("/livreurs").Subrouter()
	livreurs.Use(protect)
	livreurs.HandleFunc("/{id}", livreurCtrl.GetByID).Methods("GET")
	livreurs.HandleFunc("/{id}", livreurCtrl.Update).Methods("PUT")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Route non trouvée"}`))
	})
}
