package infrastructure

import (
	"database/sql"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
)

// CategoryRepository is read-only: the category collaborator owns the
// rows, the planner only resolves types and reminder flags from them.
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll() ([]domain.Category, error) {
	rows, err := r.db.Query(`SELECT id, name, type, notifications_enabled FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Type, &category.NotificationsEnabled); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByName(name string) (*domain.Category, error) {
	row := r.db.QueryRow(
		`SELECT id, name, type, notifications_enabled FROM categories WHERE LOWER(name) = LOWER($1)`, name)
	var category domain.Category
	err := row.Scan(&category.ID, &category.Name, &category.Type, &category.NotificationsEnabled)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
