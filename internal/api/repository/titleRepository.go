package repository

import (
	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

// TitleFilter mirrors the supported list query parameters. Nil/empty fields
// are not applied.
type TitleFilter struct {
	Name     string
	Genre    string // genre slug
	Category string // category slug
	Year     *int
}

type TitleRepository interface {
	Create(title *models.Title) error
	Update(title *models.Title) error
	Delete(id int64) error
	GetByID(id int64) (*models.Title, error)
	List(filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	ReplaceGenres(title *models.Title, genres []models.Genre) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(title *models.Title) error {
	return r.db.Create(title).Error
}

func (r *titleRepository) Update(title *models.Title) error {
	return r.db.Omit("Genres", "Category").Save(title).Error
}

// Delete cascades to the title's reviews (and through them to comments) via
// the FK constraints.
func (r *titleRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) GetByID(id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Genres").Preload("Category").First(&title, id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) List(filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	query := r.db.Model(&models.Title{})
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}
	if filter.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Genre != "" {
		query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.Genre)
	}

	if err := query.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Scope the select to the title table: the filter joins would otherwise
	// leak genres/categories columns into the row and their id/name values
	// win the scan over the title's own.
	offset := (page - 1) * pageSize
	err := query.Distinct("titles.*").
		Preload("Genres").
		Preload("Category").
		Order("titles.name").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

// ReplaceGenres swaps the title's genre set in the join table.
func (r *titleRepository) ReplaceGenres(title *models.Title, genres []models.Genre) error {
	return r.db.Model(title).Association("Genres").Replace(genres)
}
