package controllers

import (
	"errors"
	"net/http"
	"time"

	"loyaltypos-backend/models"
	"loyaltypos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberController struct {
	db *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{db: db}
}

// CreateMemberInput defines the expected JSON structure for registering a member
type CreateMemberInput struct {
	Name     string     `json:"name" binding:"required"`
	Phone    string     `json:"phone" binding:"required"`
	Birthday *time.Time `json:"birthday"`
}

// UpdateMemberInput defines the expected JSON structure for updating a member
type UpdateMemberInput struct {
	Name     *string    `json:"name"`
	Phone    *string    `json:"phone"`
	Birthday *time.Time `json:"birthday"`
}

// CreateMember registers a new loyalty member with a zero balance.
// Points only ever move through ledger operations afterwards.
func (mc *MemberController) CreateMember(c *gin.Context) {
	var input CreateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists
	var existingMember models.Member
	if err := mc.db.Where("phone = ?", input.Phone).
		First(&existingMember).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Member with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	member := models.Member{
		Name:     input.Name,
		Phone:    input.Phone,
		Birthday: input.Birthday,
		Points:   0,
	}

	if err := mc.db.Create(&member).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create member")
		return
	}

	c.JSON(http.StatusCreated, member)
}

// GetMembers retrieves all members
func (mc *MemberController) GetMembers(c *gin.Context) {
	var members []models.Member
	if err := mc.db.Order("created_at ASC").Find(&members).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}

	c.JSON(http.StatusOK, members)
}

// LookupMember finds a member by exact phone match
func (mc *MemberController) LookupMember(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "phone query parameter required")
		return
	}

	var member models.Member
	if err := mc.db.Where("phone = ?", phone).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, member)
}

// GetMember retrieves a specific member by ID
func (mc *MemberController) GetMember(c *gin.Context) {
	memberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid member ID format")
		return
	}

	var member models.Member
	if err := mc.db.First(&member, "id = ?", memberUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, member)
}

// UpdateMember updates a member's profile. The point balance is not
// editable here; it belongs to the ledger.
func (mc *MemberController) UpdateMember(c *gin.Context) {
	memberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid member ID format")
		return
	}

	var input UpdateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var member models.Member
	if err := mc.db.First(&member, "id = ?", memberUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}

		if member.Phone != *input.Phone {
			var existingMember models.Member
			if err := mc.db.Where("phone = ?", *input.Phone).
				First(&existingMember).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another member with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		member.Phone = *input.Phone
	}
	if input.Birthday != nil {
		member.Birthday = input.Birthday
	}

	if err := mc.db.Save(&member).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update member")
		return
	}

	c.JSON(http.StatusOK, member)
}

// GetMemberHistory retrieves a member's transactions, newest first
func (mc *MemberController) GetMemberHistory(c *gin.Context) {
	memberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid member ID format")
		return
	}

	var member models.Member
	if err := mc.db.First(&member, "id = ?", memberUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var history []models.Transaction
	if err := mc.db.Where("member_id = ?", member.ID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"member":  member,
		"history": history,
	})
}
