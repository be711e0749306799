package dto

import "time"

// StockBalancesQuery filters stock balance listings.
type StockBalancesQuery struct {
	ProductIDs  []string `form:"productIds"`
	ExcludeZero bool     `form:"excludeZero"`
	Limit       int      `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset      int      `form:"offset" binding:"omitempty,min=0"`
}

// StockMovementsQuery filters a product's movement history.
type StockMovementsQuery struct {
	Direction string     `form:"direction"`
	FromDate  *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset    int        `form:"offset" binding:"omitempty,min=0"`
}
