// Package store holds a small shop domain used to exercise entities against
// ordinary Go values.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Product is an item available for sale. Prices are kept in cents.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Inventory   int       `json:"inventory_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Price formats PriceCents as dollars.
func (p Product) Price() string {
	return FormatCents(p.PriceCents)
}

// InStock reports whether any inventory is left.
func (p Product) InStock() bool { return p.Inventory > 0 }

// Customer places orders.
type Customer struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Address   *string `json:"address"`
	IsActive  bool    `json:"is_active"`
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Greeting needs an argument, so it cannot back a field.
func (c Customer) Greeting(salutation string) string {
	return salutation + ", " + c.FirstName
}

// Deactivate has a pointer receiver and is only visible on *Customer.
func (c *Customer) Deactivate() bool {
	was := c.IsActive
	c.IsActive = false

	return was
}

// Audit is embedded by records that track who created them.
type Audit struct {
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Order is a transaction made by a customer.
type Order struct {
	Audit

	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	Items      []OrderItem `json:"items"`
	OrderedAt  time.Time   `json:"ordered_at" entity:"placed_at"`
	notes      string
}

// ErrNegativeTotal is returned by Total for orders with refunds larger than
// their items.
var ErrNegativeTotal = errors.New("order total is negative")

// TotalCents sums the line totals.
func (o Order) TotalCents() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.LineCents()
	}

	return total
}

// Total formats TotalCents, failing when it is negative.
func (o Order) Total() (string, error) {
	cents := o.TotalCents()
	if cents < 0 {
		return "", fmt.Errorf("order %d: %w", o.ID, ErrNegativeTotal)
	}

	return FormatCents(cents), nil
}

// ItemCount returns the number of units ordered.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}

	return n
}

// Notes returns the internal notes.
func (o Order) Notes() string { return o.notes }

// WithNotes returns a copy of o carrying notes.
func (o Order) WithNotes(notes string) Order {
	o.notes = notes
	return o
}

// OrderItem is a product line within an order. It snapshots the price at
// the time of purchase.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// LineCents is UnitPrice times Quantity.
func (i OrderItem) LineCents() int64 { return i.UnitPrice * int64(i.Quantity) }

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// FormatCents renders cents as a dollar amount, e.g. "$12.05".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
