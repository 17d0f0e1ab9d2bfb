package infrastructure

import (
	"strings"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
)

type MockCategoryRepository struct {
	Categories []domain.Category
}

func (m *MockCategoryRepository) FindAll() ([]domain.Category, error) {
	return append([]domain.Category{}, m.Categories...), nil
}

func (m *MockCategoryRepository) FindByName(name string) (*domain.Category, error) {
	for i := range m.Categories {
		if strings.EqualFold(m.Categories[i].Name, name) {
			found := m.Categories[i]
			return &found, nil
		}
	}
	return nil, nil
}

type MockSettingsRepository struct {
	Settings domain.Settings
	set      bool
}

func NewMockSettingsRepository(settings domain.Settings) *MockSettingsRepository {
	return &MockSettingsRepository{Settings: settings, set: true}
}

func (m *MockSettingsRepository) Get() (domain.Settings, error) {
	if !m.set {
		return domain.DefaultSettings(), nil
	}
	return m.Settings, nil
}

func (m *MockSettingsRepository) Update(settings domain.Settings) error {
	m.Settings = settings
	m.set = true
	return nil
}
