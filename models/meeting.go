package models

// Meeting is a scheduled meeting. StartsAt is an RFC3339 timestamp.
type Meeting struct {
	ID        string `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	Location  string `db:"location" json:"location"`
	StartsAt  string `db:"starts_at" json:"starts_at"`
	CreatedBy string `db:"created_by" json:"created_by"`
}
