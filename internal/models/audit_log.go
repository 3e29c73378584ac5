package models

import "time"

// ActivityLog is a row of the append-only activity_log table.
type ActivityLog struct {
	ID          int64     `db:"id"`
	Actor       string    `db:"actor"`
	Action      string    `db:"action"`
	SubjectType string    `db:"subject_type"`
	SubjectID   string    `db:"subject_id"`
	Changes     []byte    `db:"changes"`
	IPAddress   *string   `db:"ip_address"`
	URL         *string   `db:"url"`
	UserAgent   *string   `db:"user_agent"`
	Nonce       string    `db:"nonce"`
	PrevHash    *string   `db:"prev_hash"`
	Hash        string    `db:"hash"`
	CreatedAt   time.Time `db:"created_at"`
}
