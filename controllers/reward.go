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

type RewardController struct {
	db *gorm.DB
}

func NewRewardController(db *gorm.DB) *RewardController {
	return &RewardController{db: db}
}

type CreateRewardInput struct {
	Name   string `json:"name" binding:"required"`
	Points int    `json:"points" binding:"required,gt=0"`
}

type UpdateRewardInput struct {
	Name   *string `json:"name"`
	Points *int    `json:"points" binding:"omitempty,gt=0"`
}

// CreateReward adds a redeemable reward
func (rc *RewardController) CreateReward(c *gin.Context) {
	var input CreateRewardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reward := models.Reward{
		Name:   input.Name,
		Points: input.Points,
	}

	if err := rc.db.Create(&reward).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reward")
		return
	}

	c.JSON(http.StatusCreated, reward)
}

// GetRewards retrieves the reward catalog
func (rc *RewardController) GetRewards(c *gin.Context) {
	var rewards []models.Reward
	if err := rc.db.Order("points ASC").Find(&rewards).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rewards")
		return
	}

	c.JSON(http.StatusOK, rewards)
}

// UpdateReward updates an existing reward
func (rc *RewardController) UpdateReward(c *gin.Context) {
	rewardUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reward ID format")
		return
	}

	var input UpdateRewardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var reward models.Reward
	if err := rc.db.First(&reward, "id = ?", rewardUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reward not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		reward.Name = *input.Name
	}
	if input.Points != nil {
		reward.Points = *input.Points
	}

	if err := rc.db.Save(&reward).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reward")
		return
	}

	c.JSON(http.StatusOK, reward)
}

// DeleteReward removes a reward
func (rc *RewardController) DeleteReward(c *gin.Context) {
	rewardUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reward ID format")
		return
	}

	result := rc.db.Delete(&models.Reward{}, "id = ?", rewardUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete reward")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Reward not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted successfully"})
}
