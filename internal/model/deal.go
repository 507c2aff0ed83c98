package model

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deal represents a single FX deal.
// A zero Timestamp or a zero Amount means the value was absent in the source row.
type Deal struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	DealID       string          `json:"dealId" db:"deal_id"`
	FromCurrency string          `json:"fromCurrency" db:"from_currency"`
	ToCurrency   string          `json:"toCurrency" db:"to_currency"`
	Timestamp    time.Time       `json:"timestamp" db:"deal_timestamp"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt    time.Time       `json:"createdAt,omitempty" db:"created_at"`
}

// NewDeal builds a Deal from decoded row values.
// Currency codes are upper-cased here and nowhere else.
func NewDeal(dealID, fromCurrency, toCurrency string, timestamp time.Time, amount decimal.Decimal) Deal {
	return Deal{
		DealID:       dealID,
		FromCurrency: strings.ToUpper(fromCurrency),
		ToCurrency:   strings.ToUpper(toCurrency),
		Timestamp:    timestamp,
		Amount:       amount,
	}
}

// Upload is a raw import file as handed over by the transport layer.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
