package postgres

import (
	"context"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ratingRepository implements the repository.RatingRepository interface.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{
		db: db,
	}
}

// FindByID retrieves a single rating by its unique ID.
func (repo *ratingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ratingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by ID")
	}

	return toRatingDomain(&ratingM), nil
}

// FindForUpdate retrieves the rating for a (user, store) pair with a
// SELECT ... FOR UPDATE row lock, serializing concurrent upserts of the pair.
func (repo *ratingRepository) FindForUpdate(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&ratingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to lock rating for update")
	}

	return toRatingDomain(&ratingM), nil
}

// Create persists a new rating.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRating
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStoreNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("rating must be between 1 and 5")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	// Update the entity with generated values
	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt
	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// Update modifies an existing rating's value. The updated row is returned by
// the database so the entity carries the post-update timestamps.
func (repo *ratingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	result := repo.db.WithContext(ctx).
		Model(ratingM).
		Clauses(clause.Returning{}).
		Where("id = ?", rating.ID).
		Update("rating", rating.Rating)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("rating must be between 1 and 5")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	// Update the entity with database-generated values
	rating.CreatedAt = ratingM.CreatedAt
	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// Delete removes a rating.
func (repo *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RatingModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// StoreIDsByUser returns the distinct store IDs the user has rated.
func (repo *ratingRepository) StoreIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var storeIDs []uuid.UUID

	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("store_id", &storeIDs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list rated store IDs")
	}

	return storeIDs, nil
}

// ListByUser returns the user's ratings joined with their stores, ordered by
// updated_at descending.
func (repo *ratingRepository) ListByUser(ctx context.Context, userID uuid.UUID, page repository.Pageable) ([]*entity.Rating, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count ratings by user")
	}

	var ratingModels []*model.RatingModel
	if err := repo.db.WithContext(ctx).
		Preload("Store").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&ratingModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list ratings by user")
	}

	return toRatingDomainSlice(ratingModels), total, nil
}

// ListByStore returns all ratings for a store joined with rater identity,
// ordered by created_at descending.
func (repo *ratingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error) {
	var ratingModels []*model.RatingModel

	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&ratingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by store")
	}

	return toRatingDomainSlice(ratingModels), nil
}

// List returns ratings joined with store and user identity under the given
// filter, ordered by created_at descending.
func (repo *ratingRepository) List(ctx context.Context, params repository.ListRatingsParams) ([]*entity.Rating, int64, error) {
	filter := func(query *gorm.DB) *gorm.DB {
		if params.StoreID != nil {
			query = query.Where("store_id = ?", *params.StoreID)
		}
		if params.UserID != nil {
			query = query.Where("user_id = ?", *params.UserID)
		}

		return query
	}

	var total int64
	if err := filter(repo.db.WithContext(ctx).Model(&model.RatingModel{})).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count ratings")
	}

	var ratingModels []*model.RatingModel
	if err := filter(repo.db.WithContext(ctx)).
		Preload("Store").
		Preload("User").
		Order("created_at DESC").
		Limit(params.Page.Limit()).
		Offset(params.Page.Offset()).
		Find(&ratingModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list ratings")
	}

	return toRatingDomainSlice(ratingModels), total, nil
}

// Count returns the total number of ratings.
func (repo *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count ratings")
	}

	return count, nil
}

func toRatingDomainSlice(ratingModels []*model.RatingModel) []*entity.Rating {
	ratings := make([]*entity.Rating, 0, len(ratingModels))
	for _, ratingM := range ratingModels {
		ratings = append(ratings, toRatingDomain(ratingM))
	}

	return ratings
}

// toRatingDomain converts a GORM model to a domain entity.
func toRatingDomain(ratingM *model.RatingModel) *entity.Rating {
	rating := &entity.Rating{
		ID:        ratingM.ID,
		UserID:    ratingM.UserID,
		StoreID:   ratingM.StoreID,
		Rating:    ratingM.Rating,
		CreatedAt: ratingM.CreatedAt,
		UpdatedAt: ratingM.UpdatedAt,
	}
	if ratingM.Store != nil {
		rating.Store = toStoreDomain(&storeRow{StoreModel: *ratingM.Store})
	}
	if ratingM.User != nil {
		rating.User = toUserDomain(ratingM.User)
	}

	return rating
}

// fromRatingDomain converts a domain entity to a GORM model.
func fromRatingDomain(rating *entity.Rating) *model.RatingModel {
	return &model.RatingModel{
		ID:        rating.ID,
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		Rating:    rating.Rating,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}
