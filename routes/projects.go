package routes

import (
	"errors"

	"merchline/db"
	"merchline/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	ClientID    uint   `json:"client_id" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=draft active archived"`
	Description string `json:"description"`
	ProductIDs  []uint `json:"product_ids"`
}

type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

func createProject(c *fiber.Ctx) error {
	var req ProjectRequest
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

	var client models.Client
	if err := db.DB.First(&client, req.ClientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Client not found",
		})
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}

	project := models.Project{
		Name:        req.Name,
		ClientID:    req.ClientID,
		Status:      status,
		Description: req.Description,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create project: " + err.Error(),
		})
	}

	if len(req.ProductIDs) > 0 {
		if err := assignProducts(&project, req.ProductIDs); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to assign products: " + err.Error(),
			})
		}
	}

	db.DB.Preload("Products").First(&project, project.ID)
	return c.Status(fiber.StatusCreated).JSON(project)
}

// getProjects lists all projects for admins; client users see only their own
// active projects with the assigned catalog.
func getProjects(c *fiber.Ctx) error {
	ident := currentIdentity(c)

	var projects []models.Project
	query := db.DB.Preload("Products").Order("created_at desc")

	if ident.Role != models.RoleAdmin {
		if ident.ClientID == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "User is not associated with a client",
			})
		}
		query = query.Where("client_id = ? AND status = ?", *ident.ClientID, models.ProjectStatusActive)
	} else {
		query = query.Preload("Client")
	}

	if err := query.Find(&projects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get projects",
		})
	}

	return c.JSON(ProjectListResponse{Projects: projects, Total: len(projects)})
}

func getProject(c *fiber.Ctx) error {
	ident := currentIdentity(c)
	id := c.Params("id")

	query := db.DB.Preload("Products").Preload("Client")
	if ident.Role != models.RoleAdmin {
		if ident.ClientID == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "User is not associated with a client",
			})
		}
		query = query.Where("client_id = ? AND status = ?", *ident.ClientID, models.ProjectStatusActive)
	}

	var project models.Project
	if err := query.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find project: " + err.Error(),
		})
	}

	return c.JSON(project)
}

func updateProject(c *fiber.Ctx) error {
	id := c.Params("id")

	var project models.Project
	if err := db.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find project: " + err.Error(),
		})
	}

	var req ProjectRequest
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

	project.Name = req.Name
	project.ClientID = req.ClientID
	project.Description = req.Description
	if req.Status != "" {
		project.Status = req.Status
	}

	if err := db.DB.Save(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update project: " + err.Error(),
		})
	}

	if req.ProductIDs != nil {
		if err := assignProducts(&project, req.ProductIDs); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to assign products: " + err.Error(),
			})
		}
	}

	db.DB.Preload("Products").First(&project, project.ID)
	return c.JSON(project)
}

func deleteProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	var project models.Project
	if err := db.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find project: " + err.Error(),
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&models.Order{}).Where("project_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
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
		if err := tx.Exec("DELETE FROM products_projects WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete project: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project deleted successfully",
	})
}

// assignProducts replaces the project's catalog with the given product set.
func assignProducts(project *models.Project, productIDs []uint) error {
	var products []models.Product
	if len(productIDs) > 0 {
		if err := db.DB.Find(&products, productIDs).Error; err != nil {
			return err
		}
	}
	return db.DB.Model(project).Association("Products").Replace(products)
}
