package dto

type SummaryItem struct {
	Date  string `json:"date"`
	Slot  string `json:"slot"`
	Price int    `json:"price"`
}

// SummaryRequest mirrors what the selection screen already holds; total is
// optional and falls back to the sum of item prices.
type SummaryRequest struct {
	To    string        `json:"to" validate:"required"`
	Code  string        `json:"code" validate:"required"`
	Items []SummaryItem `json:"items" validate:"required"`
	Total *int          `json:"total"`
	Name  string        `json:"name"`
}
