package service

import (
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/repository"
)

var (
	ErrForbidden    = errors.New("you don't have permission to perform this action")
	ErrReviewExists = errors.New("you have already reviewed this title")
)

type ReviewService interface {
	Create(subject *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Get(titleID, reviewID int64) (*dto.ReviewResponse, error)
	Update(subject *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(subject *models.User, titleID, reviewID int64) error
	ListByTitle(titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	policy     policy.Policy
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		policy:     policy.Content{},
	}
}

func (s *reviewService) Create(subject *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if !s.policy.Allows(subject, policy.ActionCreate, nil) {
		return nil, ErrForbidden
	}

	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}

	// One review per (title, author); the unique index backs this up under
	// concurrent requests.
	exists, err := s.reviewRepo.ExistsByTitleAndAuthor(titleID, subject.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		Text:     req.Text,
		Score:    req.Score,
		AuthorID: subject.ID,
		TitleID:  titleID,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	// Reload with author data
	review, err = s.reviewRepo.GetByID(review.ID)
	if err != nil {
		return nil, err
	}

	return dto.ReviewFromModel(review), nil
}

func (s *reviewService) Get(titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.getForTitle(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.ReviewFromModel(review), nil
}

func (s *reviewService) Update(subject *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.getForTitle(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !s.policy.Allows(subject, policy.ActionUpdate, review) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	review, err = s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}

	return dto.ReviewFromModel(review), nil
}

func (s *reviewService) Delete(subject *models.User, titleID, reviewID int64) error {
	review, err := s.getForTitle(titleID, reviewID)
	if err != nil {
		return err
	}

	if !s.policy.Allows(subject, policy.ActionDelete, review) {
		return ErrForbidden
	}

	return s.reviewRepo.Delete(reviewID)
}

func (s *reviewService) ListByTitle(titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.ReviewFromModel(&reviews[i]))
	}

	return dto.NewPaginated(responses, total, page, pageSize), nil
}

// getForTitle loads a review and checks it belongs to the title from the
// request path.
func (s *reviewService) getForTitle(titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, gorm.ErrRecordNotFound
	}
	return review, nil
}
