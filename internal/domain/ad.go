package domain

import "time"

// Ad represents a classified listing submitted by a visitor
type Ad struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	SocialID    string  `json:"socialId"`
	Category    string  `json:"category"`
	Timestamp   float64 `json:"timestamp"` // seconds since epoch
	FilePath    string  `json:"file_path"`
	Likes       int64   `json:"likes"`
}

// EpochSeconds converts t to fractional seconds since epoch, the unit ads are stored in
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
