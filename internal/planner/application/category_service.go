package application

import (
	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
)

// CategoryServiceInterface is the read-only view of the category
// collaborator the planner depends on. The planner never mutates
// categories.
type CategoryServiceInterface interface {
	GetAllCategories() ([]domain.Category, error)
	DoesCategoryExist(name string) (bool, error)
	TypeMap() (map[string]string, error)
}

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetAllCategories() ([]domain.Category, error) {
	return s.repo.FindAll()
}

func (s *CategoryService) DoesCategoryExist(name string) (bool, error) {
	category, err := s.repo.FindByName(name)
	if err != nil {
		return false, err
	}
	return category != nil, nil
}

func (s *CategoryService) TypeMap() (map[string]string, error) {
	categories, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	return domain.CategoryTypeMap(categories), nil
}
