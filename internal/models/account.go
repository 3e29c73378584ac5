package models

// Account is a row of the accounts table.
// Nullable columns are pointers; an empty category or parent is stored as NULL.
type Account struct {
	AccountID       string  `db:"account_id"`
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	AccountType     string  `db:"account_type"`
	Category        *string `db:"category"`
	ParentAccountID *string `db:"parent_account_id"`
	Description     string  `db:"description"`
	IsActive        bool    `db:"is_active"`
	IsSystem        bool    `db:"is_system"`
	AuditFields
}
