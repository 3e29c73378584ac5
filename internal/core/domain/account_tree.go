package domain

import "sort"

// AccountIndex is a flat, id-keyed view of the chart of accounts. Hierarchy is
// resolved through parent ids only; no account holds pointers to another.
type AccountIndex struct {
	byID     map[string]Account
	children map[string][]string
}

// NewAccountIndex builds an index over accounts. Children are kept ordered by code.
func NewAccountIndex(accounts []Account) *AccountIndex {
	ix := &AccountIndex{
		byID:     make(map[string]Account, len(accounts)),
		children: make(map[string][]string),
	}
	for _, acc := range accounts {
		ix.byID[acc.AccountID] = acc
	}
	for _, acc := range accounts {
		if acc.ParentAccountID != "" {
			ix.children[acc.ParentAccountID] = append(ix.children[acc.ParentAccountID], acc.AccountID)
		}
	}
	for parentID := range ix.children {
		kids := ix.children[parentID]
		sort.Slice(kids, func(i, j int) bool {
			return ix.byID[kids[i]].Code < ix.byID[kids[j]].Code
		})
	}
	return ix
}

// Get returns the account with the given id.
func (ix *AccountIndex) Get(accountID string) (Account, bool) {
	acc, ok := ix.byID[accountID]
	return acc, ok
}

// Children returns the direct children of accountID ordered by code.
func (ix *AccountIndex) Children(accountID string) []string {
	return ix.children[accountID]
}

// WouldCreateCycle reports whether giving accountID the parent newParentID
// produces a parent chain that does not terminate. The walk also stops on any
// pre-existing loop so a corrupted index cannot hang the caller.
func (ix *AccountIndex) WouldCreateCycle(accountID, newParentID string) bool {
	if newParentID == "" {
		return false
	}
	seen := map[string]bool{}
	current := newParentID
	for current != "" {
		if current == accountID || seen[current] {
			return true
		}
		seen[current] = true
		acc, ok := ix.byID[current]
		if !ok {
			return false
		}
		current = acc.ParentAccountID
	}
	return false
}

// Depth returns the number of ancestors of accountID.
func (ix *AccountIndex) Depth(accountID string) int {
	depth := 0
	seen := map[string]bool{accountID: true}
	acc, ok := ix.byID[accountID]
	for ok && acc.ParentAccountID != "" && !seen[acc.ParentAccountID] {
		seen[acc.ParentAccountID] = true
		depth++
		acc, ok = ix.byID[acc.ParentAccountID]
	}
	return depth
}

// Ancestors returns the parent chain of accountID, nearest first.
func (ix *AccountIndex) Ancestors(accountID string) []string {
	var out []string
	seen := map[string]bool{accountID: true}
	acc, ok := ix.byID[accountID]
	for ok && acc.ParentAccountID != "" && !seen[acc.ParentAccountID] {
		seen[acc.ParentAccountID] = true
		out = append(out, acc.ParentAccountID)
		acc, ok = ix.byID[acc.ParentAccountID]
	}
	return out
}

// PreOrder returns account ids of the given type in tree order: each parent
// followed by its descendants, siblings ordered by code. Accounts whose parent
// has a different type or is missing are treated as roots.
func (ix *AccountIndex) PreOrder(accountType AccountType) []string {
	var roots []string
	for id, acc := range ix.byID {
		if acc.AccountType != accountType {
			continue
		}
		parent, ok := ix.byID[acc.ParentAccountID]
		if acc.ParentAccountID == "" || !ok || parent.AccountType != accountType {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		return ix.byID[roots[i]].Code < ix.byID[roots[j]].Code
	})

	out := make([]string, 0, len(ix.byID))
	visited := map[string]bool{}
	var walk func(id string)
	walk = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		out = append(out, id)
		for _, child := range ix.children[id] {
			if ix.byID[child].AccountType == accountType {
				walk(child)
			}
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return out
}
