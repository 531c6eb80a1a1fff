package models

// UserStats is the per-user dashboard summary. JSON names match the web client.
type UserStats struct {
	TotalShop     int64 `json:"totalShop"`
	TotalMenus    int64 `json:"totalMenus"`
	TotalOrder    int64 `json:"totalOrder"`
	TotalReviews  int64 `json:"totalReviews"`
	TotalBookings int64 `json:"totalbookings"`
}

type AdminStats struct {
	Users     int64   `json:"users"`
	MenuItems int64   `json:"menuItems"`
	Orders    int64   `json:"orders"`
	Revenue   float64 `json:"revenue"`
}

// CategoryStat is one row of the revenue-by-category breakdown.
type CategoryStat struct {
	Category string  `json:"category" bson:"category"`
	Quantity int64   `json:"quantity" bson:"quantity"`
	Revenue  float64 `json:"revenue" bson:"revenue"`
}
