package domain

import "strings"

// Category is owned by an external collaborator; the planner only ever
// reads it to resolve transaction types and reminder eligibility.
type Category struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Type                 string `json:"type"` // "income" or "expense"
	NotificationsEnabled bool   `json:"notificationsEnabled"`
}

type CategoryRepository interface {
	FindAll() ([]Category, error)
	FindByName(name string) (*Category, error)
}

// CategoryTypeMap builds the lowercase name -> type lookup the forecast
// aggregator uses to resolve a transaction's effective type. Category
// reassignment can change a transaction's semantics after the fact, so the
// map wins over the type stored on the record.
func CategoryTypeMap(categories []Category) map[string]string {
	types := make(map[string]string, len(categories))
	for _, category := range categories {
		types[strings.ToLower(category.Name)] = category.Type
	}
	return types
}
