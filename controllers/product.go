package controllers

import (
	"errors"
	"net/http"

	"loyaltypos-backend/models"
	"loyaltypos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductController struct {
	db *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{db: db}
}

type CreateProductInput struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Category string  `json:"category" binding:"required"`
	Status   string  `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type UpdateProductInput struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price" binding:"omitempty,min=0"`
	Category *string  `json:"category"`
	Status   *string  `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// CreateProduct adds a product to the catalog
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product := models.Product{
		Name:     input.Name,
		Price:    input.Price,
		Category: input.Category,
		Status:   models.ProductActive,
	}
	if input.Status != "" {
		product.Status = input.Status
	}

	if err := pc.db.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts retrieves the catalog; ?status=Active narrows to what the
// point of sale may offer.
func (pc *ProductController) GetProducts(c *gin.Context) {
	query := pc.db.Order("name ASC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// UpdateProduct updates an existing product
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := pc.db.First(&product, "id = ?", productUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	if err := pc.db.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product from the catalog
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	result := pc.db.Delete(&models.Product{}, "id = ?", productUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
