// Package hashchain computes and verifies the digests linking audit records.
//
// A record's hash is the hex SHA-256 of its canonical JSON serialization. The
// serialization has a fixed field order and includes the previous record's
// hash and the record nonce, so editing any stored field of any record breaks
// verification from that record onward. The changes document is re-encoded
// with sorted keys and no insignificant whitespace, so the digest survives
// storage that reformats JSON (Postgres jsonb).
package hashchain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// canonicalRecord fixes the field order of the hashed serialization.
type canonicalRecord struct {
	Actor       string          `json:"actor"`
	Action      string          `json:"action"`
	SubjectType string          `json:"subject_type"`
	SubjectID   string          `json:"subject_id"`
	Changes     json.RawMessage `json:"changes"`
	IPAddress   *string         `json:"ip_address"`
	URL         *string         `json:"url"`
	UserAgent   *string         `json:"user_agent"`
	CreatedAt   string          `json:"created_at"`
	Nonce       string          `json:"nonce"`
	PrevHash    *string         `json:"prev_hash"`
}

// Canonical returns the deterministic byte serialization that is hashed.
// Record ID and Hash are not part of it.
func Canonical(rec domain.AuditRecord) ([]byte, error) {
	changes, err := canonicalChanges(rec.Changes)
	if err != nil {
		return nil, err
	}
	c := canonicalRecord{
		Actor:       rec.Actor,
		Action:      string(rec.Action),
		SubjectType: string(rec.SubjectType),
		SubjectID:   rec.SubjectID,
		Changes:     changes,
		IPAddress:   rec.IPAddress,
		URL:         rec.URL,
		UserAgent:   rec.UserAgent,
		CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		Nonce:       rec.Nonce,
		PrevHash:    rec.PrevHash,
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize audit record: %w", err)
	}
	return b, nil
}

// canonicalChanges decodes raw and encodes it again. encoding/json writes
// object keys in sorted order; numbers keep their literal text.
func canonicalChanges(raw json.RawMessage) (json.RawMessage, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("null"), nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("audit record changes are not valid JSON: %w", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize audit record changes: %w", err)
	}
	return b, nil
}

// Compute returns the hex digest for rec using its PrevHash and Nonce.
func Compute(rec domain.AuditRecord) (string, error) {
	b, err := Canonical(rec)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Seal sets rec.PrevHash to prevHash and fills rec.Hash.
func Seal(rec *domain.AuditRecord, prevHash *string) error {
	rec.PrevHash = prevHash
	h, err := Compute(*rec)
	if err != nil {
		return err
	}
	rec.Hash = h
	return nil
}

// Verify walks records in order. anchor is the hash of the record immediately
// before the first one (nil when the range starts at the beginning of the log).
// It stops at the first record whose link or digest does not match.
func Verify(records []domain.AuditRecord, anchor *string) domain.ChainVerification {
	result := domain.ChainVerification{Valid: true}
	if len(records) == 0 {
		return result
	}
	result.FirstID = records[0].ID

	expectedPrev := anchor
	for _, rec := range records {
		if !sameHash(expectedPrev, rec.PrevHash) {
			return broken(result, rec.ID, fmt.Sprintf("record %d does not link to the preceding record", rec.ID))
		}
		h, err := Compute(rec)
		if err != nil {
			return broken(result, rec.ID, err.Error())
		}
		if h != rec.Hash {
			return broken(result, rec.ID, fmt.Sprintf("record %d content does not match its stored hash", rec.ID))
		}
		result.Checked++
		result.LastID = rec.ID
		stored := rec.Hash
		expectedPrev = &stored
	}
	return result
}

func broken(result domain.ChainVerification, id int64, reason string) domain.ChainVerification {
	result.Valid = false
	result.BrokenAtID = &id
	result.Reason = reason
	return result
}

func sameHash(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
