package service

import (
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

var ErrGenreNotFound = errors.New("genre not found")

type TitleService interface {
	Create(req dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Get(id int64) (*dto.TitleResponse, error)
	Update(id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(id int64) error
	List(filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error)
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	reviewRepo   repository.ReviewRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	reviewRepo repository.ReviewRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		reviewRepo:   reviewRepo,
	}
}

func (s *titleService) Create(req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if err := ValidateYear(req.Year); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindBySlug(req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
		Genres:      genres,
	}
	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}

	return s.Get(title.ID)
}

func (s *titleService) Get(id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	rating, err := s.reviewRepo.AverageScore(id)
	if err != nil {
		return nil, err
	}

	resp := dto.TitleFromModel(*title, rating)
	return &resp, nil
}

func (s *titleService) Update(id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := ValidateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.categoryRepo.FindBySlug(*req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Update(title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
			return nil, err
		}
	}

	return s.Get(id)
}

func (s *titleService) Delete(id int64) error {
	return s.titleRepo.Delete(id)
}

func (s *titleService) List(filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error) {
	titles, total, err := s.titleRepo.List(filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(titles))
	for _, title := range titles {
		ids = append(ids, title.ID)
	}
	ratings, err := s.reviewRepo.AverageScores(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for _, title := range titles {
		var rating *float64
		if avg, ok := ratings[title.ID]; ok {
			avg := avg
			rating = &avg
		}
		responses = append(responses, dto.TitleFromModel(title, rating))
	}

	return dto.NewPaginated(responses, total, page, pageSize), nil
}

func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(slugs)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, ErrGenreNotFound
		}
	}

	return genres, nil
}
