package cart

import (
	"context"
	"errors"
	"testing"

	"vitrine_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks des collaborateurs distants ---

type MockStore struct{ mock.Mock }

func (m *MockStore) List(ctx context.Context, ownerID string) ([]models.CartLine, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartLine), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, line models.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockStore) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) error {
	args := m.Called(ctx, ownerID, productID, quantity)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, ownerID, productID string) error {
	args := m.Called(ctx, ownerID, productID)
	return args.Error(0)
}

type MockIdentity struct{ mock.Mock }

func (m *MockIdentity) CurrentUserID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// newLoadedManager construit un manager dont le owner est résolu et le panier
// chargé avec les lignes données.
func newLoadedManager(t *testing.T, store *MockStore, owner string, lines []models.CartLine) *Manager {
	t.Helper()

	ident := new(MockIdentity)
	ident.On("CurrentUserID", mock.Anything).Return(owner, nil)
	store.On("List", mock.Anything, owner).Return(lines, nil).Once()

	m := NewManager(store, ident)
	resolved, ok := m.ResolveOwner(context.Background())
	assert.True(t, ok)
	assert.Equal(t, owner, resolved)
	assert.NoError(t, m.Load(context.Background()))
	return m
}

func TestResolveOwnerSansSession(t *testing.T) {
	store := new(MockStore)
	ident := new(MockIdentity)
	ident.On("CurrentUserID", mock.Anything).Return("", errors.New("pas de session"))

	m := NewManager(store, ident)
	owner, ok := m.ResolveOwner(context.Background())

	assert.False(t, ok)
	assert.Empty(t, owner)
	assert.ErrorIs(t, m.Load(context.Background()), ErrNoOwner)
	store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestResolveOwnerEcritUneSeuleFois(t *testing.T) {
	store := new(MockStore)
	ident := new(MockIdentity)
	ident.On("CurrentUserID", mock.Anything).Return("u1", nil).Once()

	m := NewManager(store, ident)
	owner1, ok1 := m.ResolveOwner(context.Background())
	owner2, ok2 := m.ResolveOwner(context.Background())

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, owner1, owner2)
	ident.AssertNumberOfCalls(t, "CurrentUserID", 1)
}

func TestLoadPanierVide(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{})

	assert.Empty(t, m.Lines())
	totalItems, totalPrice := m.Totals()
	assert.Equal(t, 0, totalItems)
	assert.Equal(t, 0.0, totalPrice)
}

func TestLoadRefiltreEtQuantiteParDefaut(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p1", Price: 9.99, Quantity: 0, OwnerID: "u1"}, // quantité omise → 1
		{ProductID: "p2", Price: 5.00, Quantity: 2, OwnerID: "u1"},
		{ProductID: "p3", Price: 1.00, Quantity: 4, OwnerID: "autre"}, // re-filtre défensif
	})

	lines := m.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, "p2", lines[1].ProductID)
}

func TestLoadIdempotent(t *testing.T) {
	store := new(MockStore)
	records := []models.CartLine{
		{ProductID: "p1", Price: 10, Quantity: 2, OwnerID: "u1"},
	}
	m := newLoadedManager(t, store, "u1", records)

	store.On("List", mock.Anything, "u1").Return(records, nil).Once()
	assert.NoError(t, m.Load(context.Background()))

	assert.Equal(t, []models.CartLine{
		{ProductID: "p1", Price: 10, Quantity: 2, OwnerID: "u1"},
	}, m.Lines())
}

func TestIncreaseQuantity(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p2", Price: 5.00, Quantity: 3, OwnerID: "u1"},
	})

	store.On("UpdateQuantity", mock.Anything, "u1", "p2", 4).Return(nil).Once()
	assert.NoError(t, m.IncreaseQuantity(context.Background(), "p2"))

	assert.Equal(t, 4, m.Lines()[0].Quantity)
	store.AssertExpectations(t)
}

func TestIncreaseQuantityEchecDistant(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p2", Price: 5.00, Quantity: 3, OwnerID: "u1"},
	})
	before := m.Lines()

	store.On("UpdateQuantity", mock.Anything, "u1", "p2", 4).
		Return(errors.New("service indisponible")).Once()

	err := m.IncreaseQuantity(context.Background(), "p2")
	assert.ErrorIs(t, err, ErrSync)

	// L'état local reste strictement celui d'avant l'appel
	assert.Equal(t, before, m.Lines())
}

func TestIncreaseQuantityLigneAbsente(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", nil)

	assert.NoError(t, m.IncreaseQuantity(context.Background(), "inconnu"))
	store.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecreaseQuantiteSuperieureAUn(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p2", Price: 5.00, Quantity: 3, OwnerID: "u1"},
	})

	store.On("UpdateQuantity", mock.Anything, "u1", "p2", 2).Return(nil).Once()
	assert.NoError(t, m.DecreaseQuantity(context.Background(), "p2"))

	assert.Equal(t, 2, m.Lines()[0].Quantity)
	store.AssertExpectations(t)
}

func TestDecreaseAUnSupprimeLaLigne(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p1", Price: 9.99, Quantity: 1, OwnerID: "u1"},
	})

	// Un seul appel distant : une suppression, jamais une mise à jour à 0
	store.On("Delete", mock.Anything, "u1", "p1").Return(nil).Once()
	assert.NoError(t, m.DecreaseQuantity(context.Background(), "p1"))

	assert.Empty(t, m.Lines())
	store.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestDecreaseAUnEchecDistant(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p1", Price: 9.99, Quantity: 1, OwnerID: "u1"},
	})
	before := m.Lines()

	store.On("Delete", mock.Anything, "u1", "p1").
		Return(errors.New("service indisponible")).Once()

	err := m.DecreaseQuantity(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrSync)
	assert.Equal(t, before, m.Lines())
}

func TestQuantiteJamaisSousUn(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p1", Price: 2.50, Quantity: 3, OwnerID: "u1"},
	})

	store.On("UpdateQuantity", mock.Anything, "u1", "p1", 2).Return(nil).Once()
	store.On("UpdateQuantity", mock.Anything, "u1", "p1", 1).Return(nil).Once()
	store.On("Delete", mock.Anything, "u1", "p1").Return(nil).Once()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		assert.NoError(t, m.DecreaseQuantity(ctx, "p1"))
		for _, line := range m.Lines() {
			assert.GreaterOrEqual(t, line.Quantity, 1)
		}
	}

	assert.Empty(t, m.Lines())
	// Décrémenter un panier vide reste un no-op
	assert.NoError(t, m.DecreaseQuantity(ctx, "p1"))
	store.AssertExpectations(t)
}

func TestDeleteLine(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p1", Price: 9.99, Quantity: 5, OwnerID: "u1"},
	})

	store.On("Delete", mock.Anything, "u1", "p1").Return(nil).Once()
	assert.NoError(t, m.DeleteLine(context.Background(), "p1"))
	assert.Empty(t, m.Lines())
}

func TestMutationsSansOwnerSontDesNoOps(t *testing.T) {
	store := new(MockStore)
	ident := new(MockIdentity)
	m := NewManager(store, ident)

	ctx := context.Background()
	assert.NoError(t, m.IncreaseQuantity(ctx, "p1"))
	assert.NoError(t, m.DecreaseQuantity(ctx, "p1"))
	assert.NoError(t, m.DeleteLine(ctx, "p1"))
	assert.ErrorIs(t, m.Add(ctx, models.CartLine{ProductID: "p1"}), ErrNoOwner)

	store.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddCreeUneNouvelleLigne(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", nil)

	expected := models.CartLine{ProductID: "p1", Title: "Sac", Price: 9.99, Quantity: 1, OwnerID: "u1"}
	store.On("Create", mock.Anything, expected).Return(nil).Once()

	assert.NoError(t, m.Add(context.Background(), models.CartLine{
		ProductID: "p1", Title: "Sac", Price: 9.99, // quantité omise → 1
	}))

	assert.Equal(t, []models.CartLine{expected}, m.Lines())
	store.AssertExpectations(t)
}

func TestAddFusionneUneLigneExistante(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p1", Price: 9.99, Quantity: 2, OwnerID: "u1"},
	})

	store.On("UpdateQuantity", mock.Anything, "u1", "p1", 3).Return(nil).Once()
	assert.NoError(t, m.Add(context.Background(), models.CartLine{ProductID: "p1", Quantity: 1}))

	// Toujours une seule ligne par productId
	assert.Len(t, m.Lines(), 1)
	assert.Equal(t, 3, m.Lines()[0].Quantity)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTotals(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p1", Price: 10, Quantity: 2, OwnerID: "u1"},
		{ProductID: "p2", Price: 5, Quantity: 1, OwnerID: "u1"},
	})

	totalItems, totalPrice := m.Totals()
	assert.Equal(t, 3, totalItems)
	assert.Equal(t, 25.00, totalPrice)

	// Recalcul idempotent sans mutation intermédiaire
	again, priceAgain := m.Totals()
	assert.Equal(t, totalItems, again)
	assert.Equal(t, totalPrice, priceAgain)
}

func TestResetOublieOwnerEtLignes(t *testing.T) {
	store := new(MockStore)
	m := newLoadedManager(t, store, "u1", []models.CartLine{
		{ProductID: "p1", Price: 10, Quantity: 2, OwnerID: "u1"},
	})

	m.Reset()

	assert.Empty(t, m.Owner())
	assert.Empty(t, m.Lines())
	totalItems, totalPrice := m.Totals()
	assert.Equal(t, 0, totalItems)
	assert.Equal(t, 0.0, totalPrice)
}
