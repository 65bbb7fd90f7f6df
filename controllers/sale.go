// controllers/sale.go
package controllers

import (
	"errors"
	"net/http"

	"loyaltypos-backend/services"
	"loyaltypos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleController exposes the ledger operations: record a sale, accrue
// points manually, redeem a reward.
type SaleController struct {
	ledger *services.LedgerService
}

func NewSaleController(ledger *services.LedgerService) *SaleController {
	return &SaleController{ledger: ledger}
}

type SaleItemInput struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Category string  `json:"category"`
}

type RecordSaleInput struct {
	Phone         string          `json:"phone" binding:"required"`
	Items         []SaleItemInput `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string          `json:"paymentMethod"`
	Deferred      bool            `json:"deferred"`
}

type AccumulateInput struct {
	Phone  string  `json:"phone" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type RedeemInput struct {
	Phone    string    `json:"phone" binding:"required"`
	RewardID uuid.UUID `json:"rewardId" binding:"required"`
}

// RecordSale records a sale and its points accrual; with deferred set
// the debt is booked in the same operation.
func (sc *SaleController) RecordSale(c *gin.Context) {
	var input RecordSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	items := make([]services.SaleItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, services.SaleItem{
			Name:     item.Name,
			Price:    item.Price,
			Category: item.Category,
		})
	}

	result, err := sc.ledger.RecordSale(c.Request.Context(), input.Phone, items, input.PaymentMethod, input.Deferred)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// AccumulatePoints credits floor(amount/10) points to a member
func (sc *SaleController) AccumulatePoints(c *gin.Context) {
	var input AccumulateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := sc.ledger.ManualAccruePoints(c.Request.Context(), input.Phone, input.Amount)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// RedeemReward exchanges points for a reward
func (sc *SaleController) RedeemReward(c *gin.Context) {
	var input RedeemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := sc.ledger.RedeemReward(c.Request.Context(), input.Phone, input.RewardID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Member not found")
	case errors.Is(err, services.ErrRewardNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Reward not found")
	case errors.Is(err, services.ErrInsufficientPoints):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Not enough points for this reward")
	case errors.Is(err, services.ErrNoItems):
		utils.RespondWithError(c, http.StatusBadRequest, "Sale requires at least one item")
	case errors.Is(err, services.ErrDebtsNotSettleable):
		utils.RespondWithError(c, http.StatusConflict, "One or more debts are missing or already paid")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
