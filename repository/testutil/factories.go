package testutil

import (
	"time"

	"casino/models"
)

// CreateTestBalanceCode creates a balance promo code
func CreateTestBalanceCode(code string, activations, amount int64) *models.PromoCode {
	return &models.PromoCode{
		Code:            code,
		Kind:            models.PromoCodeKindBalance,
		Amount:          amount,
		ActivationsLeft: activations,
		CreatedAt:       time.Now(),
	}
}

// CreateTestLuckyCode creates a lucky promo code
func CreateTestLuckyCode(code string, activations int64) *models.PromoCode {
	return &models.PromoCode{
		Code:            code,
		Kind:            models.PromoCodeKindLucky,
		ActivationsLeft: activations,
		CreatedAt:       time.Now(),
	}
}

// CreateTestTransaction creates a transaction log entry
func CreateTestTransaction(username, transactionType string, amount int64) *models.Transaction {
	return &models.Transaction{
		Username:  username,
		Type:      transactionType,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}
