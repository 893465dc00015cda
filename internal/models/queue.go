package models

import "errors"

var ErrCustomerNotQueued = errors.New("customer is not in the queue")

// Queue is the waiting line. Order is arrival order.
type Queue struct {
	customers []*Customer
}

func NewQueue() *Queue {
	return &Queue{customers: make([]*Customer, 0)}
}

// Add puts c at the back of the line. Adding a customer that is already
// waiting leaves the queue unchanged.
func (q *Queue) Add(c *Customer) {
	if c == nil || q.indexOf(c) >= 0 {
		return
	}
	q.customers = append(q.customers, c)
}

// Remove takes c out of the line wherever it stands.
func (q *Queue) Remove(c *Customer) error {
	i := q.indexOf(c)
	if i < 0 {
		return ErrCustomerNotQueued
	}
	q.customers = append(q.customers[:i], q.customers[i+1:]...)
	return nil
}

// Peek returns the customer at the front without removing it
func (q *Queue) Peek() *Customer {
	if len(q.customers) == 0 {
		return nil
	}
	return q.customers[0]
}

func (q *Queue) Len() int {
	return len(q.customers)
}

func (q *Queue) IsEmpty() bool {
	return len(q.customers) == 0
}

// Customers returns a copy of the line, front first.
func (q *Queue) Customers() []*Customer {
	out := make([]*Customer, len(q.customers))
	copy(out, q.customers)
	return out
}

func (q *Queue) indexOf(c *Customer) int {
	for i, queued := range q.customers {
		if queued == c {
			return i
		}
	}
	return -1
}
