package service

import (
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/repository"
)

type CommentService interface {
	Create(subject *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Get(titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Update(subject *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(subject *models.User, titleID, reviewID, commentID int64) error
	ListByReview(titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	policy      policy.Policy
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		policy:      policy.Content{},
	}
}

func (s *commentService) Create(subject *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if !s.policy.Allows(subject, policy.ActionCreate, nil) {
		return nil, ErrForbidden
	}

	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     req.Text,
		AuthorID: subject.ID,
		ReviewID: reviewID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// Reload with author data
	comment, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.CommentFromModel(comment), nil
}

func (s *commentService) Get(titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.CommentFromModel(comment), nil
}

func (s *commentService) Update(subject *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !s.policy.Allows(subject, policy.ActionUpdate, comment) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	comment, err = s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}

	return dto.CommentFromModel(comment), nil
}

func (s *commentService) Delete(subject *models.User, titleID, reviewID, commentID int64) error {
	comment, err := s.getForReview(titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !s.policy.Allows(subject, policy.ActionDelete, comment) {
		return ErrForbidden
	}

	return s.commentRepo.Delete(commentID)
}

func (s *commentService) ListByReview(titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.CommentFromModel(&comments[i]))
	}

	return dto.NewPaginated(responses, total, page, pageSize), nil
}

// checkReview verifies the review exists and hangs off the title from the
// request path.
func (s *commentService) checkReview(titleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review.TitleID != titleID {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// getForReview loads a comment and checks its review/title lineage.
func (s *commentService) getForReview(titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}
