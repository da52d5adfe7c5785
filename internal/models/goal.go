package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are persisted and served as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Goal is one savings target. 0 <= Current <= Target holds after every ledger operation.
type Goal struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Name      string          `json:"name"`
	Target    decimal.Decimal `json:"target"`
	Current   decimal.Decimal `json:"current"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
