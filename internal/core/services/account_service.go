package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

// placeholderSuffix is appended to an account code to name the system account
// that receives its lines when it is deleted without an explicit replacement.
const placeholderSuffix = "-REASSIGNED"

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	auditor     portssvc.AuditAppender
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAuditor records line reassignments and deletions in the audit chain.
func WithAccountAuditor(auditor portssvc.AuditAppender) AccountServiceOption {
	return func(s *accountService) {
		s.auditor = auditor
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(txManager portsrepo.TransactionManager, repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		txManager:   txManager,
		accountRepo: repo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput, "account code and name are required")
	}
	if err := validateTypeAndCategory(req.AccountType, req.Category); err != nil {
		return nil, err
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: account code %s is already used by %s", apperrors.ErrDuplicate, code, existing.AccountID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code", slog.String("code", code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	parentID, err := s.resolveParent(ctx, req.ParentAccountID, req.ParentCode, req.AccountType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            code,
		Name:            name,
		AccountType:     req.AccountType,
		Category:        req.Category,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account in repository", slog.String("code", code))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to get accounts by IDs", slog.Int("count", len(accountIDs)))
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	domain.SortAccountsByCode(accounts)
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error) {
	var updated domain.Account
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		account, err := s.accountRepo.LockAccount(txCtx, accountID)
		if err != nil {
			return err
		}
		updated = *account

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.NewValidationError(apperrors.ReasonInvalidInput, "account name cannot be empty")
			}
			updated.Name = name
		}
		if req.Description != nil {
			updated.Description = *req.Description
		}
		if req.Category != nil {
			updated.Category = *req.Category
		}
		if req.AccountType != nil && *req.AccountType != account.AccountType {
			if err := s.checkTypeChange(txCtx, *account, *req.AccountType); err != nil {
				return err
			}
			updated.AccountType = *req.AccountType
		}
		if err := validateTypeAndCategory(updated.AccountType, updated.Category); err != nil {
			return err
		}

		if req.ParentAccountID != nil {
			updated.ParentAccountID = strings.TrimSpace(*req.ParentAccountID)
		}
		if updated.ParentAccountID != account.ParentAccountID || updated.AccountType != account.AccountType {
			if err := s.checkHierarchy(txCtx, updated); err != nil {
				return err
			}
		}

		updated.LastUpdatedAt = s.now()
		updated.LastUpdatedBy = actor
		return s.accountRepo.UpdateAccount(txCtx, updated)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return &updated, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actor string) (*domain.Account, error) {
	return s.setActive(ctx, accountID, false, actor)
}

func (s *accountService) ActivateAccount(ctx context.Context, accountID string, actor string) (*domain.Account, error) {
	return s.setActive(ctx, accountID, true, actor)
}

// DeleteAccount removes an account. Lines that reference it are moved first,
// to the requested replacement or to a system placeholder, and its children
// are re-parented to its own parent. Everything happens in one transaction.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, req dto.DeleteAccountRequest, actor string) (*dto.DeleteAccountResponse, error) {
	resp := &dto.DeleteAccountResponse{DeletedAccountID: accountID}

	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		account, err := s.accountRepo.LockAccount(txCtx, accountID)
		if err != nil {
			return err
		}

		total, _, err := s.accountRepo.CountLineReferences(txCtx, accountID)
		if err != nil {
			return fmt.Errorf("failed to count lines of account %s: %w", accountID, err)
		}

		if total > 0 {
			replacement, err := s.replacementFor(txCtx, *account, req, actor)
			if err != nil {
				return err
			}
			moved, err := s.accountRepo.ReassignLines(txCtx, accountID, replacement.AccountID)
			if err != nil {
				return fmt.Errorf("failed to reassign lines of account %s: %w", accountID, err)
			}
			resp.ReplacementAccountID = replacement.AccountID
			resp.ReassignedLines = moved

			if err := s.audit(txCtx, actor, domain.ActionAccountLinesReassigned, accountID,
				map[string]any{"accountID": accountID, "lines": moved},
				map[string]any{"accountID": replacement.AccountID, "lines": moved}); err != nil {
				return err
			}
		}

		if err := s.accountRepo.ReparentChildren(txCtx, accountID, account.ParentAccountID); err != nil {
			return fmt.Errorf("failed to re-parent children of account %s: %w", accountID, err)
		}
		if err := s.accountRepo.DeleteAccount(txCtx, accountID); err != nil {
			return fmt.Errorf("failed to delete account %s: %w", accountID, err)
		}
		return s.audit(txCtx, actor, domain.ActionAccountDeleted, accountID, account, nil)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account deleted",
		slog.String("account_id", accountID),
		slog.String("replacement_account_id", resp.ReplacementAccountID),
		slog.Int64("reassigned_lines", resp.ReassignedLines))
	return resp, nil
}

// EnsureSystemAccount returns the account with code, creating it when missing.
func (s *accountService) EnsureSystemAccount(ctx context.Context, code string, name string, accountType domain.AccountType, actor string) (*domain.Account, error) {
	return s.ensureSystemAccount(ctx, code, name, accountType, "", actor)
}

func (s *accountService) ensureSystemAccount(ctx context.Context, code, name string, accountType domain.AccountType, parentID, actor string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err == nil {
		if existing.AccountType != accountType {
			return nil, apperrors.NewConflictError(fmt.Sprintf("account %s exists with type %s, expected %s", code, existing.AccountType, accountType))
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up system account %s: %w", code, err)
	}

	now := s.now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            code,
		Name:            name,
		AccountType:     accountType,
		ParentAccountID: parentID,
		IsActive:        true,
		IsSystem:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Created concurrently; use the winner.
			return s.accountRepo.FindAccountByCode(ctx, code)
		}
		return nil, fmt.Errorf("failed to create system account %s: %w", code, err)
	}

	s.LogInfo(ctx, "System account created", slog.String("account_id", account.AccountID), slog.String("code", code))
	return &account, nil
}

func (s *accountService) setActive(ctx context.Context, accountID string, active bool, actor string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.IsActive == active {
		return account, nil
	}

	account.IsActive = active
	account.LastUpdatedAt = s.now()
	account.LastUpdatedBy = actor
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to change account status",
			slog.String("account_id", accountID), slog.Bool("active", active))
		return nil, fmt.Errorf("failed to update account status: %w", err)
	}

	s.LogInfo(ctx, "Account status changed", slog.String("account_id", accountID), slog.Bool("active", active))
	return account, nil
}

func (s *accountService) resolveParent(ctx context.Context, parentID, parentCode string, accountType domain.AccountType) (string, error) {
	var parent *domain.Account
	var err error
	switch {
	case parentID != "":
		parent, err = s.accountRepo.FindAccountByID(ctx, parentID)
	case parentCode != "":
		parent, err = s.accountRepo.FindAccountByCode(ctx, parentCode)
	default:
		return "", nil
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewValidationError(apperrors.ReasonInvalidInput, "parent account %s%s does not exist", parentID, parentCode)
		}
		return "", fmt.Errorf("failed to look up parent account: %w", err)
	}
	if parent.AccountType != accountType {
		return "", apperrors.NewValidationError(apperrors.ReasonInvalidInput,
			"parent account %s is %s, child must have the same type, got %s", parent.Code, parent.AccountType, accountType)
	}
	return parent.AccountID, nil
}

// checkTypeChange refuses to retype an account that posted history depends on.
func (s *accountService) checkTypeChange(ctx context.Context, account domain.Account, newType domain.AccountType) error {
	if !newType.IsValid() {
		return apperrors.NewValidationError(apperrors.ReasonInvalidInput, "unknown account type %s", newType)
	}
	if account.IsSystem {
		return apperrors.NewConflictError(fmt.Sprintf("system account %s cannot change type", account.Code))
	}
	_, posted, err := s.accountRepo.CountLineReferences(ctx, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to count lines of account %s: %w", account.AccountID, err)
	}
	if posted > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("account %s has %d posted lines; its type is frozen", account.Code, posted))
	}
	return nil
}

// checkHierarchy verifies the parent of updated exists, matches its type, and
// that no child of a different type would be left under it.
func (s *accountService) checkHierarchy(ctx context.Context, updated domain.Account) error {
	all, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	index := domain.NewAccountIndex(all)

	if updated.ParentAccountID != "" {
		parent, ok := index.Get(updated.ParentAccountID)
		if !ok {
			return apperrors.NewValidationError(apperrors.ReasonInvalidInput, "parent account %s does not exist", updated.ParentAccountID)
		}
		if parent.AccountType != updated.AccountType {
			return apperrors.NewValidationError(apperrors.ReasonInvalidInput,
				"parent account %s is %s, child must have the same type, got %s", parent.Code, parent.AccountType, updated.AccountType)
		}
		if index.WouldCreateCycle(updated.AccountID, updated.ParentAccountID) {
			return apperrors.NewValidationError(apperrors.ReasonInvalidInput,
				"moving account %s under %s would create a cycle", updated.Code, parent.Code)
		}
	}

	for _, childID := range index.Children(updated.AccountID) {
		child, _ := index.Get(childID)
		if child.AccountType != updated.AccountType {
			return apperrors.NewValidationError(apperrors.ReasonInvalidInput,
				"child account %s is %s and cannot stay under a %s account", child.Code, child.AccountType, updated.AccountType)
		}
	}
	return nil
}

func (s *accountService) replacementFor(ctx context.Context, account domain.Account, req dto.DeleteAccountRequest, actor string) (*domain.Account, error) {
	if req.ReplacementAccountID != "" {
		if req.ReplacementAccountID == account.AccountID {
			return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput, "an account cannot replace itself")
		}
		replacement, err := s.accountRepo.FindAccountByID(ctx, req.ReplacementAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput, "replacement account %s does not exist", req.ReplacementAccountID)
			}
			return nil, err
		}
		if replacement.AccountType != account.AccountType {
			return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput,
				"replacement account %s is %s, expected %s", replacement.Code, replacement.AccountType, account.AccountType)
		}
		if !replacement.IsActive {
			return nil, apperrors.NewValidationError(apperrors.ReasonInactiveAccount, "replacement account %s is inactive", replacement.Code)
		}
		return replacement, nil
	}

	if req.UsePlaceholder {
		return s.ensureSystemAccount(ctx, account.Code+placeholderSuffix, account.Name+" (reassigned)",
			account.AccountType, account.ParentAccountID, actor)
	}

	return nil, apperrors.NewConflictError(fmt.Sprintf("account %s is referenced by journal lines; a replacement account is required", account.Code))
}

func (s *accountService) audit(ctx context.Context, actor string, action domain.AuditAction, accountID string, before, after any) error {
	if s.auditor == nil {
		return nil
	}
	record, err := newAuditRecord(actor, action, domain.SubjectAccount, accountID, before, after)
	if err != nil {
		return err
	}
	_, err = s.auditor.Append(ctx, record)
	return err
}

func validateTypeAndCategory(accountType domain.AccountType, category domain.AccountCategory) error {
	if !accountType.IsValid() {
		return apperrors.NewValidationError(apperrors.ReasonInvalidInput, "unknown account type %s", accountType)
	}
	if !category.IsValid() {
		return apperrors.NewValidationError(apperrors.ReasonInvalidInput, "unknown account category %s", category)
	}
	if !category.AllowedFor(accountType) {
		return apperrors.NewValidationError(apperrors.ReasonInvalidInput, "category %s is only allowed for asset and liability accounts", category)
	}
	return nil
}
