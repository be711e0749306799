package dto

import "time"

// ReceivablesQuery filters the outstanding balances report.
type ReceivablesQuery struct {
	PartyKind string     `form:"partyKind"`
	AsOfDate  *time.Time `form:"asOfDate" time_format:"2006-01-02"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset    int        `form:"offset" binding:"omitempty,min=0"`
}

// SalesSummaryQuery bounds the sales summary period.
type SalesSummaryQuery struct {
	FromDate time.Time `form:"fromDate" time_format:"2006-01-02" binding:"required"`
	ToDate   time.Time `form:"toDate" time_format:"2006-01-02" binding:"required"`
}

// JournalQuery filters the cross-document journal.
type JournalQuery struct {
	DocumentTypes  []string   `form:"documentTypes"`
	FromDate       *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate         *time.Time `form:"toDate" time_format:"2006-01-02"`
	NumberContains string     `form:"number"`
	Limit          int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset         int        `form:"offset" binding:"omitempty,min=0"`
}
