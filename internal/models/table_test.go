package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_SeatPartyRespectsCapacity(t *testing.T) {
	table := NewTable(2)

	assert.False(t, table.SeatParty(NewCustomer("big", "Big", 3, 3)))
	assert.True(t, table.IsFree())

	small := NewCustomer("small", "Small", 2, 3)
	assert.True(t, table.SeatParty(small))
	assert.Same(t, small, table.Customer())
	assert.Equal(t, TableStatusOccupied, table.Status())
}

func TestTable_SeatPartyRejectsOccupied(t *testing.T) {
	table := NewTable(4)
	first := NewCustomer("first", "First", 1, 3)
	second := NewCustomer("second", "Second", 1, 3)

	assert.True(t, table.SeatParty(first))
	assert.False(t, table.SeatParty(second))
	assert.Same(t, first, table.Customer())
}

func TestTable_ServeFreeTable(t *testing.T) {
	table := NewTable(3)
	assert.Equal(t, 0, table.Serve())
	assert.True(t, table.IsFree())
}

func TestTable_ServeUntilFinished(t *testing.T) {
	table := NewTable(4)
	party := NewCustomer("p", "Pat", 3, 3)
	assert.True(t, table.SeatParty(party))

	// party of 3 eats for 6 ticks
	for i := 0; i < 5; i++ {
		assert.Equal(t, 0, table.Serve(), "tick %d", i+1)
		assert.False(t, table.IsFree())
	}
	assert.Equal(t, 15, table.Serve())
	assert.True(t, table.IsFree())
	assert.Nil(t, table.Customer())
}

func TestTable_ClearTableIsIdempotent(t *testing.T) {
	table := NewTable(1)
	table.SeatParty(NewCustomer("p", "Pat", 1, 3))

	table.ClearTable()
	table.ClearTable()
	assert.True(t, table.IsFree())
	assert.Equal(t, TableStatusFree, table.Status())
}
