package handlers

import (
	"vitrine_back_end/internal/cart"
	"vitrine_back_end/internal/catalog"
	"vitrine_back_end/internal/identity"
)

// Dépendances construites au démarrage (cmd/server) et injectées ici,
// plutôt que des singletons ambiants.
var (
	Carts    *cart.Registry
	Sessions *identity.SessionProvider
	Catalog  *catalog.Client
)

func Setup(carts *cart.Registry, sessions *identity.SessionProvider, cat *catalog.Client) {
	Carts = carts
	Sessions = sessions
	Catalog = cat
}
