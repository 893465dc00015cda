package models

// Table seats at most one party no larger than its capacity.
type Table struct {
	Capacity int
	customer *Customer
}

func NewTable(capacity int) *Table {
	return &Table{Capacity: capacity}
}

// SeatParty occupies the table with c if it is free and c fits.
func (t *Table) SeatParty(c *Customer) bool {
	if c == nil || t.customer != nil || c.PartySize > t.Capacity {
		return false
	}
	t.customer = c
	return true
}

// Serve gives the seated party one eating tick and returns what they paid,
// which is zero until they finish.
func (t *Table) Serve() int {
	if t.customer == nil {
		return 0
	}
	if !t.customer.EatTurn() {
		return 0
	}
	earned := t.customer.PartySize * EarningsPerGuest
	t.ClearTable()
	return earned
}

func (t *Table) ClearTable() {
	t.customer = nil
}

func (t *Table) IsFree() bool {
	return t.customer == nil
}

// Customer returns the seated party, or nil.
func (t *Table) Customer() *Customer {
	return t.customer
}

func (t *Table) Status() string {
	if t.IsFree() {
		return TableStatusFree
	}
	return TableStatusOccupied
}
