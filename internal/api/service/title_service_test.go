package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

func newTitleServiceForTest() (TitleService, *MockTitleRepository, *MockCategoryRepository, *MockGenreRepository, *MockReviewRepository) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockReviewRepo := new(MockReviewRepository)
	svc := NewTitleService(mockTitleRepo, mockCategoryRepo, mockGenreRepo, mockReviewRepo)
	return svc, mockTitleRepo, mockCategoryRepo, mockGenreRepo, mockReviewRepo
}

func TestTitleGet_NoReviewsMeansNoRating(t *testing.T) {
	svc, mockTitleRepo, _, _, mockReviewRepo := newTitleServiceForTest()

	title := &models.Title{ID: 1, Name: "Blade Runner", Year: 1982}
	mockTitleRepo.On("GetByID", int64(1)).Return(title, nil)
	mockReviewRepo.On("AverageScore", int64(1)).Return(nil, nil)

	resp, err := svc.Get(1)

	assert.NoError(t, err)
	assert.Equal(t, "Blade Runner", resp.Name)
	assert.Nil(t, resp.Rating)
}

func TestTitleGet_RatingIsMeanOfScores(t *testing.T) {
	svc, mockTitleRepo, _, _, mockReviewRepo := newTitleServiceForTest()

	title := &models.Title{ID: 1, Name: "Blade Runner", Year: 1982}
	avg := 7.5
	mockTitleRepo.On("GetByID", int64(1)).Return(title, nil)
	mockReviewRepo.On("AverageScore", int64(1)).Return(&avg, nil)

	resp, err := svc.Get(1)

	assert.NoError(t, err)
	assert.NotNil(t, resp.Rating)
	assert.Equal(t, 7.5, *resp.Rating)
}

func TestTitleCreate_Success(t *testing.T) {
	svc, mockTitleRepo, mockCategoryRepo, mockGenreRepo, mockReviewRepo := newTitleServiceForTest()

	category := &models.Category{ID: 3, Name: "Movies", Slug: "movies"}
	genres := []models.Genre{{ID: 5, Name: "Sci-Fi", Slug: "sci-fi"}}

	mockCategoryRepo.On("FindBySlug", "movies").Return(category, nil)
	mockGenreRepo.On("FindBySlugs", []string{"sci-fi"}).Return(genres, nil)
	mockTitleRepo.On("Create", mock.AnythingOfType("*models.Title")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Title).ID = 7
		}).
		Return(nil)
	created := &models.Title{ID: 7, Name: "Blade Runner", Year: 1982, CategoryID: &category.ID, Category: category, Genres: genres}
	mockTitleRepo.On("GetByID", int64(7)).Return(created, nil)
	mockReviewRepo.On("AverageScore", int64(7)).Return(nil, nil)

	resp, err := svc.Create(dto.CreateTitleDTO{
		Name:     "Blade Runner",
		Year:     1982,
		Category: "movies",
		Genre:    []string{"sci-fi"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "movies", resp.Category.Slug)
	assert.Len(t, resp.Genre, 1)
	mockTitleRepo.AssertExpectations(t)
}

func TestTitleCreate_FutureYearRejected(t *testing.T) {
	svc, mockTitleRepo, _, _, _ := newTitleServiceForTest()

	resp, err := svc.Create(dto.CreateTitleDTO{
		Name:     "From the Future",
		Year:     time.Now().Year() + 1,
		Category: "movies",
		Genre:    []string{"sci-fi"},
	})

	assert.ErrorIs(t, err, ErrYearInFuture)
	assert.Nil(t, resp)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTitleCreate_UnknownGenreRejected(t *testing.T) {
	svc, mockTitleRepo, mockCategoryRepo, mockGenreRepo, _ := newTitleServiceForTest()

	category := &models.Category{ID: 3, Name: "Movies", Slug: "movies"}
	mockCategoryRepo.On("FindBySlug", "movies").Return(category, nil)
	// Only one of the two requested slugs exists.
	mockGenreRepo.On("FindBySlugs", []string{"sci-fi", "nope"}).
		Return([]models.Genre{{ID: 5, Name: "Sci-Fi", Slug: "sci-fi"}}, nil)

	resp, err := svc.Create(dto.CreateTitleDTO{
		Name:     "Blade Runner",
		Year:     1982,
		Category: "movies",
		Genre:    []string{"sci-fi", "nope"},
	})

	assert.ErrorIs(t, err, ErrGenreNotFound)
	assert.Nil(t, resp)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTitleCreate_UnknownCategoryRejected(t *testing.T) {
	svc, mockTitleRepo, mockCategoryRepo, _, _ := newTitleServiceForTest()

	mockCategoryRepo.On("FindBySlug", "nope").Return(nil, gorm.ErrRecordNotFound)

	resp, err := svc.Create(dto.CreateTitleDTO{
		Name:     "Blade Runner",
		Year:     1982,
		Category: "nope",
		Genre:    []string{"sci-fi"},
	})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, resp)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTitleList_RatingsBatched(t *testing.T) {
	svc, mockTitleRepo, _, _, mockReviewRepo := newTitleServiceForTest()

	titles := []models.Title{
		{ID: 1, Name: "Rated", Year: 1982},
		{ID: 2, Name: "Unrated", Year: 1990},
	}
	mockTitleRepo.On("List", repository.TitleFilter{}, 1, 20).Return(titles, int64(2), nil)
	mockReviewRepo.On("AverageScores", []int64{1, 2}).Return(map[int64]float64{1: 9.0}, nil)

	resp, err := svc.List(repository.TitleFilter{}, 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.NotNil(t, resp.Items[0].Rating)
	assert.Equal(t, 9.0, *resp.Items[0].Rating)
	assert.Nil(t, resp.Items[1].Rating)
}
