package cart

import (
	"context"
	"errors"
	"testing"

	"vitrine_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestForSessionSansSession(t *testing.T) {
	store := new(MockStore)
	ident := new(MockIdentity)
	ident.On("CurrentUserID", mock.Anything).Return("", errors.New("pas de session"))

	reg := NewRegistry(store, ident)
	m, err := reg.ForSession(context.Background())

	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrNoOwner)
}

func TestForSessionChargeUneSeuleFois(t *testing.T) {
	store := new(MockStore)
	ident := new(MockIdentity)
	ident.On("CurrentUserID", mock.Anything).Return("u1", nil)
	store.On("List", mock.Anything, "u1").Return([]models.CartLine{
		{ProductID: "p1", Price: 10, Quantity: 2, OwnerID: "u1"},
	}, nil).Once()

	reg := NewRegistry(store, ident)

	m1, err := reg.ForSession(context.Background())
	assert.NoError(t, err)
	m2, err := reg.ForSession(context.Background())
	assert.NoError(t, err)

	// Même manager pour la même session : un seul rechargement distant
	assert.Same(t, m1, m2)
	store.AssertNumberOfCalls(t, "List", 1)
}

func TestDropPuisNouvelleSessionRecharge(t *testing.T) {
	store := new(MockStore)
	ident := new(MockIdentity)
	ident.On("CurrentUserID", mock.Anything).Return("u1", nil)
	store.On("List", mock.Anything, "u1").Return([]models.CartLine{}, nil).Twice()

	reg := NewRegistry(store, ident)

	m1, err := reg.ForSession(context.Background())
	assert.NoError(t, err)

	reg.Drop("u1")
	assert.Empty(t, m1.Owner()) // le manager abandonné est bien réinitialisé

	m2, err := reg.ForSession(context.Background())
	assert.NoError(t, err)
	assert.NotSame(t, m1, m2)
	store.AssertNumberOfCalls(t, "List", 2)
}

func TestForSessionEchecDeChargement(t *testing.T) {
	store := new(MockStore)
	ident := new(MockIdentity)
	ident.On("CurrentUserID", mock.Anything).Return("u1", nil)
	store.On("List", mock.Anything, "u1").Return(nil, errors.New("mongo indisponible")).Once()

	reg := NewRegistry(store, ident)
	m, err := reg.ForSession(context.Background())

	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrSync)
}
