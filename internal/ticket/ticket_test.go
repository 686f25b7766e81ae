package ticket_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/LeoR1u/ProyectoLegos/internal/ticket"
	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()

	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func sampleOrder() *models.Order {
	return &models.Order{
		ID:        42,
		Total:     decimal.RequireFromString("24.98"),
		CreatedAt: time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC),
		Lines: []models.OrderLine{
			{OrderID: 42, ProductName: "Brick", Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
			{OrderID: 42, ProductName: "Plate", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	}
}

func TestProject(t *testing.T) {
	printedAt := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	t.Run("Lines and total", func(t *testing.T) {
		// Act
		tk := ticket.Project("", sampleOrder(), "emmet", printedAt)

		// Assert
		assert.Equal(t, ticket.DefaultStoreName, tk.StoreName)
		assert.Equal(t, ticket.Title, tk.Title)
		assert.Equal(t, int64(42), tk.OrderID)
		assert.Equal(t, []string{"2 x Brick — $19.98", "1 x Plate — $5.00"}, tk.Lines)
		assert.Equal(t, "TOTAL: $24.98", tk.TotalLine)
	})

	t.Run("Timestamp is the print time", func(t *testing.T) {
		tk := ticket.Project("", sampleOrder(), "emmet", printedAt)

		assert.Equal(t, printedAt, tk.GeneratedAt)
		assert.Contains(t, tk.Metadata(), "Date: 2026-03-01 10:30:00")
	})

	t.Run("Order is not modified", func(t *testing.T) {
		order := sampleOrder()

		_ = ticket.Project("", order, "emmet", printedAt)

		assert.Equal(t, sampleOrder(), order)
	})
}

func TestTicketText(t *testing.T) {
	g := newGoldie(t)

	t.Run("order_42", func(t *testing.T) {
		tk := ticket.Project("", sampleOrder(), "emmet", time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC))

		g.Assert(t, "order_42", []byte(tk.Text()))
	})

	t.Run("custom_store", func(t *testing.T) {
		order := &models.Order{
			ID:    7,
			Total: decimal.RequireFromString("14.97"),
			Lines: []models.OrderLine{
				{OrderID: 7, ProductName: "Minifig", Quantity: 3, UnitPrice: decimal.RequireFromString("4.99")},
			},
		}

		tk := ticket.Project("BRICK BAZAAR", order, "wyldstyle", time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

		g.Assert(t, "custom_store", []byte(tk.Text()))
	})
}

func TestPDFRenderer(t *testing.T) {
	renderer := ticket.NewPDFRenderer()
	tk := ticket.Project("", sampleOrder(), "emmet", time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC))

	t.Run("Writes a PDF document", func(t *testing.T) {
		var buf bytes.Buffer

		err := renderer.Render(&buf, tk)

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		assert.Contains(t, buf.String(), "%%EOF")
	})

	t.Run("Attachment metadata", func(t *testing.T) {
		assert.Equal(t, "application/pdf", renderer.ContentType())
		assert.Equal(t, "ticket_42.pdf", renderer.FileName(tk))
	})
}
