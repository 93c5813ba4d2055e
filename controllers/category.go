package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/models"
	"github.com/skillbridge/api/utils"
)

// GetAllCategories returns every subject category.
func GetAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := db.DB.Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch categories",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "tuition category",
		"data":    categories,
	})
}

// CreateCategory adds a new subject category. Names are unique.
func CreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if category.Name == "" || category.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "name and description are required",
		})
	}

	var existing models.Category
	if db.DB.Where("name = ?", category.Name).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Category with this name already exists",
		})
	}

	if err := db.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create category",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Category created successfully",
		"data":    category,
	})
}

// UpdateCategory renames or re-describes a category, keeping names unique.
func UpdateCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Category not found",
		})
	}

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if body.Name != "" && body.Name != category.Name {
		var existing models.Category
		if db.DB.Where("name = ?", body.Name).First(&existing).RowsAffected > 0 {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Category with this name already exists",
			})
		}
		category.Name = body.Name
	}
	if body.Description != "" {
		category.Description = body.Description
	}

	if err := db.DB.Save(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update category",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DeleteCategory removes a category. Tutor associations are dropped, tutors
// themselves are untouched.
func DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Category not found",
		})
	}

	if err := db.DB.Model(&category).Association("Tutors").Clear(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete category",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Delete(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete category",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
