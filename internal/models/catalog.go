package models

// CatalogGame is the normalized shape of a third-party catalog entry.
type CatalogGame struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	ReleaseDate string   `json:"releaseDate"`
	Platforms   []string `json:"platforms"`
	Genres      []string `json:"genres"`
	Description string   `json:"description,omitempty"`
}
