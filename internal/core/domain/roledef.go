package domain

import "time"

// RoleDefinition is the stored role document (name unique). The closed Role
// type governs authorization; these documents exist so roles stay a managed
// resource with descriptions.
type RoleDefinition struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
