package services

import (
	"errors"
	"fmt"

	"merchline/mailer"
	"merchline/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// errRollback aborts the surrounding transaction after validation errors
// have been recorded on the entity. It never escapes a Call.
var errRollback = errors.New("rollback")

// OrderCreator turns a candidate order with attached line items into a
// priced, persisted order. Item quantities are aggregated per product, the
// unit price per product is resolved through the bulk tiers, and the order
// plus all items are written in a single transaction. Validation failures
// roll everything back and are reported on the order itself; callers must
// check Success.
type OrderCreator struct {
	db     *gorm.DB
	mailer mailer.Mailer
	order  *models.Order
	saved  bool
	err    error
}

func NewOrderCreator(db *gorm.DB, m mailer.Mailer, order *models.Order) *OrderCreator {
	if order.Errors == nil {
		order.Errors = models.Errors{}
	}
	return &OrderCreator{db: db, mailer: m, order: order}
}

func (c *OrderCreator) Call() *models.Order {
	// Fail fast: a candidate that already carries errors is never persisted.
	if c.order.Errors.Any() {
		return c.order
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		products, err := c.loadProducts(tx)
		if err != nil {
			return err
		}

		c.validate(products)
		if c.order.Errors.Any() {
			return errRollback
		}

		c.calculateTotals(products)

		if err := tx.Omit("Client", "Project").Create(c.order).Error; err != nil {
			return err
		}
		c.saved = true
		return nil
	})

	if err != nil && !errors.Is(err, errRollback) {
		c.err = err
		return c.order
	}

	if c.Success() {
		// Notifications are enqueued after commit; their failure never
		// affects the placed order.
		c.mailer.OrderConfirmation(c.order.ID)
		c.mailer.AdminNotification(c.order.ID)
	}

	return c.order
}

// Success reports whether the order was persisted with no validation errors.
func (c *OrderCreator) Success() bool {
	return c.saved && !c.order.Errors.Any() && c.err == nil
}

// Err returns the fatal error, if any: a missing product reference or an
// unexpected persistence failure. Validation errors are not reported here.
func (c *OrderCreator) Err() error {
	return c.err
}

func (c *OrderCreator) loadProducts(tx *gorm.DB) (map[uint]*models.Product, error) {
	ids := make([]uint, 0, len(c.order.OrderItems))
	seen := make(map[uint]bool)
	for _, item := range c.order.OrderItems {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products := make(map[uint]*models.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	var found []models.Product
	if err := tx.Find(&found, ids).Error; err != nil {
		return nil, err
	}
	for i := range found {
		products[found[i].ID] = &found[i]
	}

	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
		}
	}
	return products, nil
}

func (c *OrderCreator) validate(products map[uint]*models.Product) {
	errs := c.order.Errors

	if c.order.DeliveryDate.IsZero() {
		errs.Add("delivery_date", "can't be blank")
	}
	if len(c.order.OrderItems) == 0 {
		errs.Add("order_items", "must contain at least one item")
	}

	for _, item := range c.order.OrderItems {
		product := products[item.ProductID]
		if item.Quantity <= 0 {
			errs.Add("order_items", fmt.Sprintf("quantity must be greater than 0 for %s", product.Name))
		}
		if item.Color == "" || !product.HasColor(item.Color) {
			errs.Add("order_items", fmt.Sprintf("color %q is not available for %s", item.Color, product.Name))
		}
		if item.Size == "" || !product.HasSize(item.Size) {
			errs.Add("order_items", fmt.Sprintf("size %q is not available for %s", item.Size, product.Name))
		}
	}
}

func (c *OrderCreator) calculateTotals(products map[uint]*models.Product) {
	totalQuantity := 0
	groups := make(map[uint]int)
	for _, item := range c.order.OrderItems {
		totalQuantity += item.Quantity
		groups[item.ProductID] += item.Quantity
	}

	total := decimal.Zero
	for productID, quantity := range groups {
		unitPrice := PriceFor(products[productID], quantity)
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
	}

	c.order.TotalQuantity = totalQuantity
	c.order.Price = total
}
