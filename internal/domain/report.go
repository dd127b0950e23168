package domain

// ItemSales is one top-seller row of a period report.
type ItemSales struct {
	ItemID   uint   `json:"itemId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Report aggregates orders over a half-open [Start, End) period.
// Month 0 means the whole calendar year.
type Report struct {
	Year         int                 `json:"year"`
	Month        int                 `json:"month"`
	Start        string              `json:"start"`
	End          string              `json:"end"`
	Orders       []Order             `json:"orders"`
	TotalRevenue float64             `json:"totalRevenue"`
	StatusCounts map[OrderStatus]int `json:"statusCounts"`
	TopItems     []ItemSales         `json:"topItems"`
}
