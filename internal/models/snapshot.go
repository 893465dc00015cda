package models

// Snapshot is a detached copy of the restaurant state for rendering.
type Snapshot struct {
	PlayerName string
	Turn       int
	TimeLeft   int
	Duration   int
	Money      int
	Queue      []CustomerView
	Tables     []TableView
	Notices    []string
}

type CustomerView struct {
	Name      string
	PartySize int
	Patience  int
	Anger     int
	Symbol    string
}

type TableView struct {
	Capacity int
	Status   string
	Customer *CustomerView
	EatLeft  int
	EatTotal int
}

func NewCustomerView(c *Customer) CustomerView {
	return CustomerView{
		Name:      c.Name,
		PartySize: c.PartySize,
		Patience:  c.Patience,
		Anger:     c.Anger,
		Symbol:    c.Symbol(),
	}
}
