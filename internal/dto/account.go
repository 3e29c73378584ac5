package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
// The parent may be given by id or by code; the id wins when both are set.
type CreateAccountRequest struct {
	Code            string                 `json:"code" binding:"required,max=32"`
	Name            string                 `json:"name" binding:"required,max=255"`
	AccountType     domain.AccountType     `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Category        domain.AccountCategory `json:"category" binding:"omitempty,oneof=SHORT_TERM LONG_TERM"`
	ParentAccountID string                 `json:"parentAccountID"`
	ParentCode      string                 `json:"parentCode"`
	Description     string                 `json:"description"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID       string                 `json:"accountID"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	AccountType     domain.AccountType     `json:"accountType"`
	Category        domain.AccountCategory `json:"category,omitempty"`
	ParentAccountID string                 `json:"parentAccountID,omitempty"`
	Description     string                 `json:"description"`
	IsActive        bool                   `json:"isActive"`
	IsSystem        bool                   `json:"isSystem"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy   string                 `json:"lastUpdatedBy"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// An empty ParentAccountID moves the account to the root.
type UpdateAccountRequest struct {
	Name            *string                 `json:"name" binding:"omitempty,min=1,max=255"`
	Description     *string                 `json:"description"`
	AccountType     *domain.AccountType     `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Category        *domain.AccountCategory `json:"category" binding:"omitempty,oneof='' SHORT_TERM LONG_TERM"`
	ParentAccountID *string                 `json:"parentAccountID"`
}

// DeleteAccountRequest controls what happens to lines that reference the account.
type DeleteAccountRequest struct {
	ReplacementAccountID string `json:"replacementAccountID"`
	UsePlaceholder       bool   `json:"usePlaceholder"` // Create a system account of the same type to receive the lines
}

// DeleteAccountResponse reports what the delete moved.
type DeleteAccountResponse struct {
	DeletedAccountID     string `json:"deletedAccountID"`
	ReplacementAccountID string `json:"replacementAccountID,omitempty"`
	ReassignedLines      int64  `json:"reassignedLines"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		Category:        acc.Category,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		IsSystem:        acc.IsSystem,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
