package controllers

import (
	"errors"
	"net/http"

	"loyaltypos-backend/models"
	"loyaltypos-backend/services"
	"loyaltypos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PointRuleController struct {
	db *gorm.DB
}

func NewPointRuleController(db *gorm.DB) *PointRuleController {
	return &PointRuleController{db: db}
}

// CreatePointRuleInput defines the expected JSON structure for creating a rule.
// A non-positive rate would divide by zero in the calculator, so it is
// rejected here and never stored.
type CreatePointRuleInput struct {
	Category    string  `json:"category" binding:"required"`
	THBPerPoint float64 `json:"thbPerPoint" binding:"required,gt=0"`
}

type UpdatePointRuleInput struct {
	Category    *string  `json:"category"`
	THBPerPoint *float64 `json:"thbPerPoint" binding:"omitempty,gt=0"`
}

// CreatePointRule creates an exchange rate for a category
func (pc *PointRuleController) CreatePointRule(c *gin.Context) {
	var input CreatePointRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := services.ValidateExchangeRate(input.THBPerPoint); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "thbPerPoint must be positive")
		return
	}

	// One rule per category keeps the calculator's lookup unambiguous
	var existingRule models.PointRule
	if err := pc.db.Where("category = ?", input.Category).
		First(&existingRule).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "A rule for this category already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	rule := models.PointRule{
		Category:    input.Category,
		THBPerPoint: input.THBPerPoint,
	}

	if err := pc.db.Create(&rule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create point rule")
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// GetPointRules retrieves all rules
func (pc *PointRuleController) GetPointRules(c *gin.Context) {
	var rules []models.PointRule
	if err := pc.db.Order("category ASC").Find(&rules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve point rules")
		return
	}

	c.JSON(http.StatusOK, rules)
}

// UpdatePointRule updates an existing rule
func (pc *PointRuleController) UpdatePointRule(c *gin.Context) {
	ruleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rule ID format")
		return
	}

	var input UpdatePointRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var rule models.PointRule
	if err := pc.db.First(&rule, "id = ?", ruleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Point rule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Category != nil && *input.Category != rule.Category {
		var existingRule models.PointRule
		if err := pc.db.Where("category = ?", *input.Category).
			First(&existingRule).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "A rule for this category already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		rule.Category = *input.Category
	}
	if input.THBPerPoint != nil {
		if err := services.ValidateExchangeRate(*input.THBPerPoint); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "thbPerPoint must be positive")
			return
		}
		rule.THBPerPoint = *input.THBPerPoint
	}

	if err := pc.db.Save(&rule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update point rule")
		return
	}

	c.JSON(http.StatusOK, rule)
}

// DeletePointRule removes a rule; its category falls back to the default rate
func (pc *PointRuleController) DeletePointRule(c *gin.Context) {
	ruleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rule ID format")
		return
	}

	result := pc.db.Delete(&models.PointRule{}, "id = ?", ruleUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete point rule")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Point rule not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Point rule deleted successfully"})
}
