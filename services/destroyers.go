package services

import (
	"errors"

	"merchline/models"

	"gorm.io/gorm"
)

var ErrProductInUse = errors.New("product is referenced by existing orders")

// DestroyClient removes a client and everything scoped to it: users,
// projects with their catalog assignments, and orders with their items.
// Address rows are left in place; they are immutable and may be shared.
func DestroyClient(db *gorm.DB, clientID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var projectIDs []uint
		if err := tx.Model(&models.Project{}).Where("client_id = ?", clientID).Pluck("id", &projectIDs).Error; err != nil {
			return err
		}

		var orderIDs []uint
		if err := tx.Model(&models.Order{}).Where("client_id = ?", clientID).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}

		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Order{}, orderIDs).Error; err != nil {
				return err
			}
		}

		if len(projectIDs) > 0 {
			if err := tx.Exec("DELETE FROM products_projects WHERE project_id IN ?", projectIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Project{}, projectIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("client_id = ?", clientID).Delete(&models.User{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Client{}, clientID).Error
	})
}

// DestroyProduct removes a product and its project assignments. Products
// referenced by order items are never deleted; orders keep their history.
func DestroyProduct(db *gorm.DB, productID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrProductInUse
		}

		if err := tx.Exec("DELETE FROM products_projects WHERE product_id = ?", productID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, productID).Error
	})
}
