package dto

// TrialBalanceParams defines query parameters for the trial balance.
type TrialBalanceParams struct {
	Start string `form:"start" binding:"required,datetime=2006-01-02"`
	End   string `form:"end" binding:"required,datetime=2006-01-02"`
}

// BalanceSheetParams defines query parameters for the balance sheet.
type BalanceSheetParams struct {
	AsOf      string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
	CompareTo string `form:"compareTo" binding:"omitempty,datetime=2006-01-02"`
}

// AccountBalanceParams defines query parameters for a single account balance.
type AccountBalanceParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}
