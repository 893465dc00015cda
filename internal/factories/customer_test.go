package factories

import (
	"testing"

	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCustomerFactory_CreateCustomer(t *testing.T) {
	cf := NewCustomerFactory(42)

	c := cf.CreateCustomer(3)
	assert.Equal(t, 3, c.PartySize)
	assert.Equal(t, models.DefaultPatience, c.Patience)
	assert.Equal(t, 6, c.EatTime)
	assert.NotEmpty(t, c.ID)
	assert.NotEmpty(t, c.Name)
}

func TestCustomerFactory_UniqueIDs(t *testing.T) {
	cf := NewCustomerFactory(1)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := cf.CreateCustomer(1).ID
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestCustomerFactory_SeededNamesRepeat(t *testing.T) {
	a := NewCustomerFactory(7)
	b := NewCustomerFactory(7)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.CreateCustomer(2).Name, b.CreateCustomer(2).Name)
	}
}

func TestPlayerName(t *testing.T) {
	assert.NotEmpty(t, PlayerName())
	assert.NotEmpty(t, SessionID())
}
