package models

import "strings"

// Customer is one arriving party. The pointer is its identity: two parties
// with equal fields are still different customers.
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PartySize int    `json:"party_size"`
	Patience  int    `json:"patience"`
	Anger     int    `json:"anger"`
	EatTime   int    `json:"eat_time"`
}

func NewCustomer(id, name string, partySize, patience int) *Customer {
	return &Customer{
		ID:        id,
		Name:      name,
		PartySize: partySize,
		Patience:  patience,
		EatTime:   partySize * EatTimePerGuest,
	}
}

// Wait decays patience by one turn. Once patience is used up every further
// wait makes the customer angrier.
func (c *Customer) Wait() {
	c.Patience--
	if c.Patience <= 0 {
		c.Anger++
	}
}

func (c *Customer) IsAngry() bool {
	return c.Anger > AngerThreshold
}

// EatTurn advances the meal by one tick and reports whether it is finished.
func (c *Customer) EatTurn() bool {
	if c.EatTime > 0 {
		c.EatTime--
	}
	return c.EatTime <= 0
}

func (c *Customer) Symbol() string {
	return PartySymbol(c.PartySize)
}

// PartySymbol is the queue glyph for a party of the given size.
func PartySymbol(partySize int) string {
	if partySize < MinPartySize {
		return "?"
	}
	return strings.Repeat("🙂", partySize)
}
