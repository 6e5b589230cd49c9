package cart

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"vitrine_back_end/internal/models"
)

// Store est le magasin distant qui fait autorité sur le contenu du panier.
// Chaque mutation du Manager passe par exactement un appel distant.
type Store interface {
	List(ctx context.Context, ownerID string) ([]models.CartLine, error)
	Create(ctx context.Context, line models.CartLine) error
	UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) error
	// Delete renvoie nil si la ligne n'existe déjà plus (suppression = intention satisfaite).
	Delete(ctx context.Context, ownerID, productID string) error
}

// Identity résout l'utilisateur de la session active.
type Identity interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// Manager maintient la vue locale du panier d'un utilisateur et la garde
// cohérente avec le store distant : un appel distant par mutation, l'état
// local n'est modifié qu'après succès. Les mutations sont sérialisées par
// un mutex pour éviter que deux taps rapides ne se perdent mutuellement
// leur mise à jour.
type Manager struct {
	store    Store
	identity Identity

	mu    sync.Mutex
	owner string
	lines map[string]models.CartLine
}

func NewManager(store Store, identity Identity) *Manager {
	return &Manager{
		store:    store,
		identity: identity,
		lines:    make(map[string]models.CartLine),
	}
}

// ResolveOwner interroge le fournisseur d'identité. L'échec n'est pas une
// erreur pour l'appelant : le panier reste simplement non initialisé.
// Le owner n'est écrit qu'une seule fois par session.
func (m *Manager) ResolveOwner(ctx context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner != "" {
		return m.owner, true
	}

	owner, err := m.identity.CurrentUserID(ctx)
	if err != nil || owner == "" {
		log.Printf("⚠️ Aucune session active pour le panier: %v", err)
		return "", false
	}

	m.owner = owner
	return owner, true
}

// Load recharge intégralement le panier depuis le store distant.
// Remplacement en bloc, pas de fusion : un résultat vide donne un panier vide.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner == "" {
		return ErrNoOwner
	}

	records, err := m.store.List(ctx, m.owner)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSync, err)
	}

	lines := make(map[string]models.CartLine, len(records))
	for _, rec := range records {
		// Re-filtre défensif : on ne garde que les lignes du propriétaire résolu
		if rec.OwnerID != m.owner {
			continue
		}
		if rec.Quantity < 1 {
			rec.Quantity = 1
		}
		lines[rec.ProductID] = rec
	}
	m.lines = lines
	return nil
}

// Add fusionne-ou-crée : si le produit est déjà dans le panier, c'est une mise
// à jour distante de quantité ; sinon une création. Garantit l'unicité par productId.
func (m *Manager) Add(ctx context.Context, line models.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner == "" {
		return ErrNoOwner
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	line.OwnerID = m.owner

	if existing, ok := m.lines[line.ProductID]; ok {
		newQty := existing.Quantity + line.Quantity
		if err := m.store.UpdateQuantity(ctx, m.owner, line.ProductID, newQty); err != nil {
			return fmt.Errorf("%w: %v", ErrSync, err)
		}
		existing.Quantity = newQty
		m.lines[line.ProductID] = existing
		return nil
	}

	if err := m.store.Create(ctx, line); err != nil {
		return fmt.Errorf("%w: %v", ErrSync, err)
	}
	m.lines[line.ProductID] = line
	return nil
}

// IncreaseQuantity incrémente une ligne existante. No-op si pas de session
// ou si la ligne est absente localement.
func (m *Manager) IncreaseQuantity(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner == "" {
		return nil
	}
	line, ok := m.lines[productID]
	if !ok {
		return nil
	}

	newQty := line.Quantity + 1
	if err := m.store.UpdateQuantity(ctx, m.owner, productID, newQty); err != nil {
		return fmt.Errorf("%w: %v", ErrSync, err)
	}
	line.Quantity = newQty
	m.lines[productID] = line
	return nil
}

// DecreaseQuantity décrémente une ligne. À quantité 1, c'est une suppression
// distante : une quantité 0 n'est jamais persistée ni affichée.
func (m *Manager) DecreaseQuantity(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner == "" {
		return nil
	}
	line, ok := m.lines[productID]
	if !ok {
		return nil
	}

	if line.Quantity > 1 {
		newQty := line.Quantity - 1
		if err := m.store.UpdateQuantity(ctx, m.owner, productID, newQty); err != nil {
			return fmt.Errorf("%w: %v", ErrSync, err)
		}
		line.Quantity = newQty
		m.lines[productID] = line
		return nil
	}

	if err := m.store.Delete(ctx, m.owner, productID); err != nil {
		return fmt.Errorf("%w: %v", ErrSync, err)
	}
	delete(m.lines, productID)
	return nil
}

// DeleteLine supprime une ligne, quelle que soit sa quantité.
func (m *Manager) DeleteLine(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner == "" {
		return nil
	}

	if err := m.store.Delete(ctx, m.owner, productID); err != nil {
		return fmt.Errorf("%w: %v", ErrSync, err)
	}
	delete(m.lines, productID)
	return nil
}

// Totals recalcule les agrégats à chaque lecture, jamais de cache
// (pas de dérive possible par invalidation manquée).
func (m *Manager) Totals() (totalItems int, totalPrice float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, line := range m.lines {
		totalItems += line.Quantity
		totalPrice += line.Price * float64(line.Quantity)
	}
	return totalItems, totalPrice
}

// Lines renvoie une copie triée des lignes du panier.
func (m *Manager) Lines() []models.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.CartLine, 0, len(m.lines))
	for _, line := range m.lines {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Owner renvoie le propriétaire résolu, ou "" si le panier est non initialisé.
func (m *Manager) Owner() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner
}

// Reset vide le panier et oublie le propriétaire (déconnexion).
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owner = ""
	m.lines = make(map[string]models.CartLine)
}
