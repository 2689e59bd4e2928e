package routes

import (
	"errors"

	"merchline/db"
	"merchline/models"
	"merchline/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ClientListResponse struct {
	Clients []models.Client `json:"clients"`
	Total   int             `json:"total"`
}

func createClient(c *fiber.Ctx) error {
	var params services.ClientParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	if err := validate.Struct(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	creator := services.NewClientCreator(db.DB, mail, params)
	client := creator.Call()

	if !creator.Success() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": client.Errors,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}

func getAllClients(c *fiber.Ctx) error {
	var clients []models.Client
	if err := db.DB.Order("created_at desc").Find(&clients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get clients",
		})
	}

	return c.JSON(ClientListResponse{Clients: clients, Total: len(clients)})
}

func searchClients(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	like := "%" + query + "%"
	var clients []models.Client
	if err := db.DB.Where("company_name LIKE ? OR personal_name LIKE ?", like, like).Find(&clients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search clients",
		})
	}

	return c.JSON(ClientListResponse{Clients: clients, Total: len(clients)})
}

func getClient(c *fiber.Ctx) error {
	id := c.Params("id")

	var client models.Client
	err := db.DB.Preload("Address").Preload("ShippingAddress").Preload("Users").Preload("Projects").First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Client not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find client: " + err.Error(),
		})
	}

	return c.JSON(client)
}

func updateClient(c *fiber.Ctx) error {
	id := c.Params("id")

	var client models.Client
	err := db.DB.Preload("Address").Preload("ShippingAddress").First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Client not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find client: " + err.Error(),
		})
	}

	var params services.ClientParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	updater := services.NewClientUpdater(db.DB, &client, params)
	updated := updater.Call()

	if updater.Failed() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": updated.Errors,
		})
	}

	return c.JSON(updated)
}

func deleteClient(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client ID",
		})
	}

	var client models.Client
	if err := db.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Client not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find client: " + err.Error(),
		})
	}

	if err := services.DestroyClient(db.DB, uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete client: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Client deleted successfully",
	})
}
