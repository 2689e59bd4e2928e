package routes

import (
	"errors"
	"time"

	"merchline/db"
	"merchline/models"
	"merchline/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderItemRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	ProjectID    uint               `json:"project_id" validate:"required"`
	DeliveryDate string             `json:"delivery_date"`
	OrderItems   []OrderItemRequest `json:"order_items"`
}

type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Total  int            `json:"total"`
}

func createOrder(c *fiber.Ctx) error {
	ident := currentIdentity(c)
	if ident.ClientID == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only client users can place orders",
		})
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	// Orders are placed within the caller's own active projects only.
	var project models.Project
	err := db.DB.Where("id = ? AND client_id = ? AND status = ?",
		req.ProjectID, *ident.ClientID, models.ProjectStatusActive).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find project: " + err.Error(),
		})
	}

	var deliveryDate time.Time
	if req.DeliveryDate != "" {
		deliveryDate, err = time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Delivery date must be a calendar date (YYYY-MM-DD)",
			})
		}
	}

	userID := ident.UserID
	order := &models.Order{
		ClientID:     *ident.ClientID,
		ProjectID:    project.ID,
		OrderedByID:  &userID,
		DeliveryDate: deliveryDate,
	}
	for _, item := range req.OrderItems {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID: item.ProductID,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	creator := services.NewOrderCreator(db.DB, mail, order)
	result := creator.Call()

	if err := creator.Err(); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create order: " + err.Error(),
		})
	}
	if !creator.Success() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": result.Errors,
		})
	}

	var fullOrder models.Order
	if err := db.DB.Preload("OrderItems.Product").Preload("Project").First(&fullOrder, result.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Order created but failed to load full details",
		})
	}

	BroadcastOrderCreated(&fullOrder)

	return c.Status(fiber.StatusCreated).JSON(fullOrder)
}

func getAllOrders(c *fiber.Ctx) error {
	ident := currentIdentity(c)

	query := db.DB.Preload("Client").Preload("Project").Preload("OrderItems.Product").Order("created_at desc")

	if ident.Role != models.RoleAdmin {
		if ident.ClientID == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "User is not associated with a client",
			})
		}
		query = query.Where("client_id = ?", *ident.ClientID)
	} else if q := c.Query("q"); q != "" {
		ids, err := searchOrderIDs(q)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to search orders",
			})
		}
		query = query.Where("id IN ?", ids)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get orders",
		})
	}

	return c.JSON(OrderListResponse{Orders: orders, Total: len(orders)})
}

func getOrder(c *fiber.Ctx) error {
	ident := currentIdentity(c)
	id := c.Params("id")

	query := db.DB.Preload("Client.Address").Preload("Client.ShippingAddress").
		Preload("Project").Preload("OrderItems.Product")
	if ident.Role != models.RoleAdmin {
		if ident.ClientID == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "User is not associated with a client",
			})
		}
		query = query.Where("client_id = ?", *ident.ClientID)
	}

	var order models.Order
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find order: " + err.Error(),
		})
	}

	return c.JSON(order)
}

func deleteOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find order: " + err.Error(),
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order deleted successfully",
	})
}

// searchOrderIDs resolves a keyword against client, project and product
// names and returns the matching order ids.
func searchOrderIDs(keyword string) ([]uint, error) {
	like := "%" + keyword + "%"
	var ids []uint
	err := db.DB.Model(&models.Order{}).
		Distinct("orders.id").
		Joins("JOIN clients ON clients.id = orders.client_id").
		Joins("JOIN projects ON projects.id = orders.project_id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("clients.company_name LIKE ? OR clients.personal_name LIKE ? OR projects.name LIKE ? OR products.name LIKE ?",
			like, like, like, like).
		Pluck("orders.id", &ids).Error
	return ids, err
}
