package service

import (
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

type GenreService interface {
	Create(req dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Delete(slug string) error
	List(search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error)
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) Create(req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if err := ValidateSlug(req.Slug); err != nil {
		return nil, err
	}

	if _, err := s.genreRepo.FindBySlug(req.Slug); err == nil {
		return nil, ErrSlugInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.genreRepo.Create(genre); err != nil {
		return nil, err
	}

	resp := dto.GenreFromModel(*genre)
	return &resp, nil
}

func (s *genreService) Delete(slug string) error {
	return s.genreRepo.DeleteBySlug(slug)
}

func (s *genreService) List(search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error) {
	genres, total, err := s.genreRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for _, genre := range genres {
		responses = append(responses, dto.GenreFromModel(genre))
	}

	return dto.NewPaginated(responses, total, page, pageSize), nil
}
