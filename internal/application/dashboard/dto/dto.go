package dto

import "time"

type ResolveTimeframeRequest struct {
	Selection string     `form:"selection" json:"selection" validate:"required"`
	Previous  *time.Time `form:"previous" json:"previous,omitempty"`
}

// PickDateRequest sets an explicit calendar date (YYYY-MM-DD, business
// timezone) on top of the currently selected timeframe.
type PickDateRequest struct {
	Date      string `form:"date" json:"date" validate:"required"`
	Timeframe string `form:"timeframe" json:"timeframe,omitempty"`
}

// TimeframeResponse carries the resolved selection. Date is nil when the
// selection keeps the previous date and none was supplied.
type TimeframeResponse struct {
	Timeframe string     `json:"timeframe"`
	Label     string     `json:"label"`
	Date      *time.Time `json:"date"`
	Changed   bool       `json:"changed"`
}

type TimeframeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
