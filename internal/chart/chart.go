// Package chart loads a chart of accounts from YAML and applies it through the account registry.
package chart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"gopkg.in/yaml.v3"
)

// Node is one account of the YAML tree. Children inherit the parent's type
// when they omit their own.
type Node struct {
	Code        string                 `yaml:"code"`
	Name        string                 `yaml:"name"`
	Type        domain.AccountType     `yaml:"type"`
	Category    domain.AccountCategory `yaml:"category"`
	Description string                 `yaml:"description"`
	Children    []Node                 `yaml:"children"`
}

// Chart is a parsed chart of accounts file.
type Chart struct {
	Accounts []Node `yaml:"accounts"`
}

// ImportResult reports which codes were created and which already existed.
type ImportResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// LoadFile reads and validates a chart from path.
func LoadFile(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chart file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses and validates a chart.
func Load(r io.Reader) (*Chart, error) {
	var c Chart
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: chart file is empty", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", apperrors.ErrValidation, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Chart) validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("%w: chart defines no accounts", apperrors.ErrValidation)
	}
	seen := make(map[string]bool)
	for i := range c.Accounts {
		if err := validateNode(&c.Accounts[i], "", seen); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *Node, parentType domain.AccountType, seen map[string]bool) error {
	if n.Code == "" || n.Name == "" {
		return fmt.Errorf("%w: every account needs a code and a name (got code %q, name %q)", apperrors.ErrValidation, n.Code, n.Name)
	}
	if seen[n.Code] {
		return fmt.Errorf("%w: account code %s appears twice", apperrors.ErrValidation, n.Code)
	}
	seen[n.Code] = true

	if n.Type == "" {
		n.Type = parentType
	}
	if !n.Type.IsValid() {
		return fmt.Errorf("%w: account %s has invalid type %q", apperrors.ErrValidation, n.Code, n.Type)
	}
	if parentType != "" && n.Type != parentType {
		return fmt.Errorf("%w: account %s is %s but its parent is %s", apperrors.ErrValidation, n.Code, n.Type, parentType)
	}
	if !n.Category.IsValid() || !n.Category.AllowedFor(n.Type) {
		return fmt.Errorf("%w: category %q not allowed on %s account %s", apperrors.ErrValidation, n.Category, n.Type, n.Code)
	}

	for i := range n.Children {
		if err := validateNode(&n.Children[i], n.Type, seen); err != nil {
			return err
		}
	}
	return nil
}

// Flatten lists create requests with every parent before its children.
func (c *Chart) Flatten() []dto.CreateAccountRequest {
	var out []dto.CreateAccountRequest
	var walk func(nodes []Node, parentCode string)
	walk = func(nodes []Node, parentCode string) {
		for _, n := range nodes {
			out = append(out, dto.CreateAccountRequest{
				Code:        n.Code,
				Name:        n.Name,
				AccountType: n.Type,
				Category:    n.Category,
				ParentCode:  parentCode,
				Description: n.Description,
			})
			walk(n.Children, n.Code)
		}
	}
	walk(c.Accounts, "")
	return out
}

// Import creates every account of the chart that does not exist yet. Existing
// codes are left untouched.
func Import(ctx context.Context, accounts portssvc.AccountSvcFacade, c *Chart, actor string) (*ImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	result := &ImportResult{Created: []string{}, Skipped: []string{}}

	for _, req := range c.Flatten() {
		_, err := accounts.GetAccountByCode(ctx, req.Code)
		if err == nil {
			result.Skipped = append(result.Skipped, req.Code)
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return result, fmt.Errorf("failed to look up account %s: %w", req.Code, err)
		}

		if _, err := accounts.CreateAccount(ctx, req, actor); err != nil {
			return result, fmt.Errorf("failed to create account %s: %w", req.Code, err)
		}
		result.Created = append(result.Created, req.Code)
	}

	logger.Info("Chart of accounts imported",
		slog.Int("created", len(result.Created)),
		slog.Int("skipped", len(result.Skipped)))
	return result, nil
}
