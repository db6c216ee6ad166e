package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// validateAmount accepts positive amounts with at most two decimal places.
func validateAmount(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return validationError("%s must be positive", field)
	}
	if !v.Equal(v.Round(2)) {
		return validationError("%s must have at most two decimal places", field)
	}
	return nil
}

// minorUnits converts a validated amount to cents: 25.00 becomes 2500.
func minorUnits(v decimal.Decimal) int64 {
	return v.Mul(hundred).IntPart()
}

func validReference(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
