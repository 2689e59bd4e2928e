package services

import (
	"testing"
	"time"

	"merchline/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrderFixtures(t *testing.T, gdb *gorm.DB) (*models.Product, *models.Product, *models.Order) {
	t.Helper()

	productA := &models.Product{
		Name:         "Crew Neck Tee",
		BasePrice:    decimal.NewFromInt(100),
		MinimumOrder: 1,
		BulkPrices: []models.BulkPrice{
			{Qty: 5, Price: decimal.NewFromInt(90)},
			{Qty: 10, Price: decimal.NewFromInt(80)},
		},
		Sizes:  []string{"M", "L"},
		Colors: []models.Color{{Name: "Black", HexColor: "#000000"}},
	}
	productB := &models.Product{
		Name:      "Tote Bag",
		BasePrice: decimal.NewFromInt(50),
		Sizes:     []string{"Single Size"},
		Colors:    []models.Color{{Name: "Natural", HexColor: "#f5f0e1"}},
	}
	require.NoError(t, gdb.Create(productA).Error)
	require.NoError(t, gdb.Create(productB).Error)

	client := &models.Client{CompanyName: "Acme Corp", PersonalName: "Jane Doe", PhoneNumber: "555-1234"}
	require.NoError(t, gdb.Create(client).Error)
	project := &models.Project{ClientID: client.ID, Name: "Spring Merch", Status: models.ProjectStatusActive}
	require.NoError(t, gdb.Create(project).Error)

	order := &models.Order{
		ClientID:     client.ID,
		ProjectID:    project.ID,
		DeliveryDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		OrderItems: []models.OrderItem{
			{ProductID: productA.ID, Color: "Black", Size: "M", Quantity: 3},
			{ProductID: productA.ID, Color: "Black", Size: "L", Quantity: 7},
			{ProductID: productB.ID, Color: "Natural", Size: "Single Size", Quantity: 2},
		},
	}
	return productA, productB, order
}

func TestOrderCreatorAggregatesAndPersists(t *testing.T) {
	gdb := testDB(t)
	mail := &fakeMailer{}
	_, _, order := seedOrderFixtures(t, gdb)

	creator := NewOrderCreator(gdb, mail, order)
	result := creator.Call()

	require.True(t, creator.Success())
	require.NoError(t, creator.Err())

	// 3 + 7 + 2 units across both products.
	assert.Equal(t, 12, result.TotalQuantity)
	// Product A aggregates to 10 units at the 80 tier, product B stays on
	// its 50 base price: 80*10 + 50*2.
	assert.True(t, result.Price.Equal(decimal.NewFromInt(900)),
		"want 900, got %s", result.Price)

	var orderCount, itemCount int64
	gdb.Model(&models.Order{}).Count(&orderCount)
	gdb.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(3), itemCount)

	assert.Equal(t, []uint{result.ID}, mail.orderConfirmations)
	assert.Equal(t, []uint{result.ID}, mail.adminNotifications)
}

func TestOrderCreatorFailsFastOnPreExistingErrors(t *testing.T) {
	gdb := testDB(t)
	mail := &fakeMailer{}
	_, _, order := seedOrderFixtures(t, gdb)

	order.Errors = models.Errors{}
	order.Errors.Add("base", "some error")

	creator := NewOrderCreator(gdb, mail, order)
	result := creator.Call()

	assert.Same(t, order, result)
	assert.False(t, creator.Success())

	var orderCount int64
	gdb.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Empty(t, mail.orderConfirmations)
}

func TestOrderCreatorRollsBackOnValidationFailure(t *testing.T) {
	gdb := testDB(t)
	mail := &fakeMailer{}
	_, _, order := seedOrderFixtures(t, gdb)

	// One bad item poisons the whole order.
	order.OrderItems[2].Color = "Neon Pink"

	creator := NewOrderCreator(gdb, mail, order)
	result := creator.Call()

	assert.False(t, creator.Success())
	assert.True(t, result.Errors.Any())

	var orderCount, itemCount int64
	gdb.Model(&models.Order{}).Count(&orderCount)
	gdb.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)
	assert.Empty(t, mail.orderConfirmations)
	assert.Empty(t, mail.adminNotifications)
}

func TestOrderCreatorRequiresDeliveryDateAndItems(t *testing.T) {
	gdb := testDB(t)
	mail := &fakeMailer{}
	_, _, order := seedOrderFixtures(t, gdb)

	order.DeliveryDate = time.Time{}
	order.OrderItems = nil

	creator := NewOrderCreator(gdb, mail, order)
	result := creator.Call()

	assert.False(t, creator.Success())
	assert.Contains(t, result.Errors, "delivery_date")
	assert.Contains(t, result.Errors, "order_items")
}

func TestOrderCreatorRejectsNonPositiveQuantity(t *testing.T) {
	gdb := testDB(t)
	mail := &fakeMailer{}
	_, _, order := seedOrderFixtures(t, gdb)

	order.OrderItems[0].Quantity = 0

	creator := NewOrderCreator(gdb, mail, order)
	result := creator.Call()

	assert.False(t, creator.Success())
	assert.Contains(t, result.Errors, "order_items")

	var orderCount int64
	gdb.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
}

func TestOrderCreatorMissingProductIsFatal(t *testing.T) {
	gdb := testDB(t)
	mail := &fakeMailer{}
	_, _, order := seedOrderFixtures(t, gdb)

	order.OrderItems[0].ProductID = 9999

	creator := NewOrderCreator(gdb, mail, order)
	creator.Call()

	assert.False(t, creator.Success())
	assert.ErrorIs(t, creator.Err(), ErrProductNotFound)

	var orderCount int64
	gdb.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
}
