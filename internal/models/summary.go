package models

// Summary is the archive-wide counter set shown alongside the listing.
// It is computed on every request.
type Summary struct {
	Total         int64 `json:"total"`
	Categorized   int64 `json:"categorized"`
	Uncategorized int64 `json:"uncategorized"`
	Archived      int64 `json:"archived"`
	Important     int64 `json:"important"`
}
