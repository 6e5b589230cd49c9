package cart

import "errors"

var (
	// ErrNoOwner : aucune session authentifiée — les mutations sont des no-ops.
	ErrNoOwner = errors.New("aucun propriétaire de panier résolu")

	// ErrSync : le store distant a refusé ou raté l'opération.
	// L'état local reste celui confirmé par le dernier appel réussi.
	ErrSync = errors.New("échec de synchronisation du panier")

	// ErrNotFound : la ligne n'existe plus côté store distant.
	ErrNotFound = errors.New("ligne de panier introuvable")
)
