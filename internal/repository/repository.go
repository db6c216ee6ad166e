package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when a conditional decrement would take availability below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// conn picks the transaction when one is supplied, otherwise the shared handle.
func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
