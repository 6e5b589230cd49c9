package cart

import (
	"context"
	"log"
	"sync"
)

// Registry possède le cycle de vie des managers de panier : un manager par
// utilisateur authentifié, créé et chargé à la première utilisation, détruit
// à la déconnexion. Remplace les singletons ambiants par des dépendances
// construites explicitement.
type Registry struct {
	store    Store
	identity Identity

	mu       sync.Mutex
	managers map[string]*Manager
}

func NewRegistry(store Store, identity Identity) *Registry {
	return &Registry{
		store:    store,
		identity: identity,
		managers: make(map[string]*Manager),
	}
}

// ForSession renvoie le manager de l'utilisateur de la session active.
// Séquencement explicite : résoudre le owner, puis charger le panier.
func (r *Registry) ForSession(ctx context.Context) (*Manager, error) {
	m := NewManager(r.store, r.identity)
	owner, ok := m.ResolveOwner(ctx)
	if !ok {
		return nil, ErrNoOwner
	}

	r.mu.Lock()
	if existing, ok := r.managers[owner]; ok {
		r.mu.Unlock()
		return existing, nil
	}
	r.mu.Unlock()

	if err := m.Load(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.managers[owner]; ok {
		// Un autre chargement a gagné la course, on garde le sien
		return existing, nil
	}
	r.managers[owner] = m
	return m, nil
}

// Drop détruit le manager d'un utilisateur (déconnexion ou session invalide).
func (r *Registry) Drop(ownerID string) {
	r.mu.Lock()
	m, ok := r.managers[ownerID]
	delete(r.managers, ownerID)
	r.mu.Unlock()

	if ok {
		m.Reset()
		log.Printf("🧹 Panier local libéré pour l'utilisateur %s", ownerID)
	}
}
