package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttrabelsi/facturier/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGenerateIDUnique(t *testing.T) {
	s := openTestStore(t)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := s.GenerateID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateInvoiceNumberSequence(t *testing.T) {
	s := openTestStore(t)

	n, err := s.GenerateInvoiceNumber()
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", n)

	inv := &models.Invoice{
		InvoiceNumber: n,
		ClientID:      "c1",
		Currency:      "TND",
		Items:         []models.LineItem{{Name: "Design", Quantity: 1, PricePerUnit: 100}},
	}
	require.NoError(t, s.SaveInvoice(inv))

	n2, err := s.GenerateInvoiceNumber()
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", n2)
}

func TestSaveInvoiceRoundTrip(t *testing.T) {
	s := openTestStore(t)

	inv := &models.Invoice{
		InvoiceNumber: "INV-0001",
		ClientID:      "c1",
		Currency:      "EUR",
		TaxRate:       19,
		Note:          "net 30",
		Items: []models.LineItem{
			{Name: "Consulting", Quantity: 2, PricePerUnit: 100, Discount: 10},
			{Name: "Hosting", Quantity: 1, PricePerUnit: 25},
		},
	}
	require.NoError(t, s.SaveInvoice(inv))
	assert.NotEmpty(t, inv.ID)
	assert.False(t, inv.CreatedAt.IsZero())

	got, err := s.GetInvoiceByNumber("INV-0001")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Consulting", got.Items[0].Name)
	assert.Equal(t, "Hosting", got.Items[1].Name)
	assert.Equal(t, 19.0, got.TaxRate)
	// No stored totals anywhere: derived values exist only through the
	// calculation service.
	assert.Equal(t, "net 30", got.Note)
}

func TestSaveInvoiceReplacesItems(t *testing.T) {
	s := openTestStore(t)

	inv := &models.Invoice{
		InvoiceNumber: "INV-0001",
		ClientID:      "c1",
		Items: []models.LineItem{
			{Name: "A", Quantity: 1, PricePerUnit: 10},
			{Name: "B", Quantity: 1, PricePerUnit: 20},
		},
	}
	require.NoError(t, s.SaveInvoice(inv))

	inv.Items = []models.LineItem{{Name: "C", Quantity: 3, PricePerUnit: 5}}
	require.NoError(t, s.SaveInvoice(inv))

	got, err := s.GetInvoiceByNumber("INV-0001")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "C", got.Items[0].Name)
	assert.Equal(t, 0, got.Items[0].Position)
}

func TestDeleteInvoiceCascades(t *testing.T) {
	s := openTestStore(t)

	inv := &models.Invoice{
		InvoiceNumber: "INV-0001",
		ClientID:      "c1",
		Items:         []models.LineItem{{Name: "A", Quantity: 1, PricePerUnit: 10}},
	}
	require.NoError(t, s.SaveInvoice(inv))
	require.NoError(t, s.DeleteInvoice(inv.ID))

	_, err := s.GetInvoiceByNumber("INV-0001")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	var count int64
	require.NoError(t, s.db.Model(&models.LineItem{}).Where("invoice_id = ?", inv.ID).Count(&count).Error)
	assert.Zero(t, count, "line items must be deleted with their invoice")

	assert.ErrorIs(t, s.DeleteInvoice(inv.ID), ErrInvoiceNotFound)
}

func TestToggleInvoiceStatus(t *testing.T) {
	s := openTestStore(t)

	inv := &models.Invoice{
		InvoiceNumber: "INV-0001",
		ClientID:      "c1",
		Items:         []models.LineItem{{Name: "A", Quantity: 1, PricePerUnit: 10}},
	}
	require.NoError(t, s.SaveInvoice(inv))
	saved, err := s.GetInvoiceByNumber("INV-0001")
	require.NoError(t, err)

	toggled, err := s.ToggleInvoiceStatus(inv.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPaid)
	assert.False(t, toggled.UpdatedAt.Before(saved.UpdatedAt))
	require.Len(t, toggled.Items, 1)

	back, err := s.ToggleInvoiceStatus(inv.ID)
	require.NoError(t, err)
	assert.False(t, back.IsPaid)

	_, err = s.ToggleInvoiceStatus("missing")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestClientWeakReference(t *testing.T) {
	s := openTestStore(t)

	c := &models.Client{Name: "Acme", Email: "acme@example.com"}
	require.NoError(t, s.SaveClient(c))
	require.NotEmpty(t, c.ID)

	got, err := s.GetClientByID(c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got.Name)

	// A dangling reference resolves to nil, not an error.
	missing, err := s.GetClientByID("gone")
	require.NoError(t, err)
	assert.Nil(t, missing)

	none, err := s.GetClientByID("")
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.ErrorIs(t, s.SaveClient(&models.Client{Name: "   "}), ErrClientNameRequired)
}

func TestCompanyInfoSingleton(t *testing.T) {
	s := openTestStore(t)

	none, err := s.GetCompanyInfo()
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, s.SaveCompanyInfo(&models.CompanyInfo{Name: "First"}))
	require.NoError(t, s.SaveCompanyInfo(&models.CompanyInfo{Name: "Second", Phone: "+216 123"}))

	got, err := s.GetCompanyInfo()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Second", got.Name, "last saved wins")

	var count int64
	require.NoError(t, s.db.Model(&models.CompanyInfo{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	assert.ErrorIs(t, s.SaveCompanyInfo(&models.CompanyInfo{}), ErrCompanyNameRequired)
}

func TestSavedItems(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveSavedItem(&models.SavedItem{Name: "Day rate", DefaultPrice: 400}))
	require.NoError(t, s.SaveSavedItem(&models.SavedItem{Name: "Half day", DefaultPrice: 220}))

	items, err := s.GetSavedItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Day rate", items[0].Name)
	assert.Equal(t, 400.0, items[0].DefaultPrice)
}
