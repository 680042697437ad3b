package models

// Recommendation is one suggestion shown to the user, either built from one of
// their struggling habits or taken from the generic catalog.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}
