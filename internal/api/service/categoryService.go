package service

import (
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

var ErrSlugInUse = errors.New("slug already in use")

type CategoryService interface {
	Create(req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(slug string) error
	List(search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	if err := ValidateSlug(req.Slug); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindBySlug(req.Slug); err == nil {
		return nil, ErrSlugInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	resp := dto.CategoryFromModel(*category)
	return &resp, nil
}

func (s *categoryService) Delete(slug string) error {
	return s.categoryRepo.DeleteBySlug(slug)
}

func (s *categoryService) List(search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error) {
	categories, total, err := s.categoryRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryFromModel(category))
	}

	return dto.NewPaginated(responses, total, page, pageSize), nil
}
