package models

// CartLine représente une ligne du panier d'un utilisateur.
// Les champs title/price/image sont des instantanés pris au moment de l'ajout
// et ne sont jamais resynchronisés avec le catalogue.
type CartLine struct {
	ProductID string  `json:"productId" bson:"productId"`
	Title     string  `json:"title" bson:"title"`
	Price     float64 `json:"price" bson:"price"`
	Image     string  `json:"image" bson:"image"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	OwnerID   string  `json:"userId" bson:"ownerId"`
}
