// controllers/debt.go
package controllers

import (
	"net/http"

	"loyaltypos-backend/services"
	"loyaltypos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DebtController struct {
	ledger  *services.LedgerService
	reports *services.ReportService
}

func NewDebtController(ledger *services.LedgerService, reports *services.ReportService) *DebtController {
	return &DebtController{ledger: ledger, reports: reports}
}

type SettleDebtsInput struct {
	IDs           []uuid.UUID `json:"ids" binding:"required,min=1"`
	PaymentMethod string      `json:"paymentMethod" binding:"required"`
}

// GetUnpaidDebts lists open debts grouped by customer name
func (dc *DebtController) GetUnpaidDebts(c *gin.Context) {
	groups, err := dc.reports.GetUnpaidDebts(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve unpaid debts")
		return
	}

	c.JSON(http.StatusOK, groups)
}

// SettleDebts marks the selected debts paid, all-or-nothing
func (dc *DebtController) SettleDebts(c *gin.Context) {
	var input SettleDebtsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	paidAt, err := dc.ledger.SettleDebts(c.Request.Context(), input.IDs, input.PaymentMethod)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Debts settled successfully",
		"paidAt":        paidAt,
		"paymentMethod": input.PaymentMethod,
		"settled":       len(input.IDs),
	})
}
