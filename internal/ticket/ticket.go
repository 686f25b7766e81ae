// Package ticket turns a stored order into the printable receipt handed to the
// customer after checkout.
package ticket

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
)

const (
	DefaultStoreName = "LEGO STORE"
	Title            = "TICKET"
	TimeLayout       = "2006-01-02 15:04:05"

	separator = "----------------------------------------"
)

// Ticket is the print layout of one order. Renderers only read it.
type Ticket struct {
	StoreName   string
	Title       string
	OrderID     int64
	Customer    string
	GeneratedAt time.Time
	Lines       []string
	TotalLine   string
}

// Renderer writes a ticket in some document format.
type Renderer interface {
	Render(w io.Writer, t Ticket) error
	ContentType() string
	FileName(t Ticket) string
}

// Project builds the ticket for order. generatedAt is the moment of printing,
// not the order's creation time.
func Project(storeName string, order *models.Order, customer string, generatedAt time.Time) Ticket {
	if storeName == "" {
		storeName = DefaultStoreName
	}

	lines := make([]string, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, fmt.Sprintf("%d x %s — $%s", line.Quantity, line.ProductName, line.LineTotal().StringFixed(2)))
	}

	return Ticket{
		StoreName:   storeName,
		Title:       Title,
		OrderID:     order.ID,
		Customer:    customer,
		GeneratedAt: generatedAt,
		Lines:       lines,
		TotalLine:   "TOTAL: $" + order.Total.StringFixed(2),
	}
}

func (t Ticket) Heading() string {
	return t.StoreName + " - " + t.Title
}

func (t Ticket) Metadata() []string {
	return []string{
		fmt.Sprintf("Order ID: %d", t.OrderID),
		"Customer: " + t.Customer,
		"Date: " + t.GeneratedAt.Format(TimeLayout),
	}
}

// Text renders the ticket as plain text, one field per line.
func (t Ticket) Text() string {
	var b strings.Builder

	b.WriteString(t.Heading())
	b.WriteString("\n\n")

	for _, m := range t.Metadata() {
		b.WriteString(m)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(separator)
	b.WriteByte('\n')

	for _, l := range t.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	b.WriteString(separator)
	b.WriteByte('\n')
	b.WriteString(t.TotalLine)
	b.WriteByte('\n')

	return b.String()
}
