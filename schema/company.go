package schema

import "time"

// Company is an independent profile that folders and use cases may
// reference. Deleting a company never cascades; it only clears the
// active-company pointer when it pointed at the deleted one.
type Company struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BusinessProcess is a lookup-only entity that use cases reference
// weakly by id. No ownership, no cascade.
type BusinessProcess struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
