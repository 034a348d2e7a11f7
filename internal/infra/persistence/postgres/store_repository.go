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
)

// storeRepository implements the repository.StoreRepository interface.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{
		db: db,
	}
}

// storeRow carries a store plus the viewer's own rating from the left join.
type storeRow struct {
	model.StoreModel
	ViewerRating *int
}

// FindByID retrieves a store, left-joining the viewer's own rating when a
// viewer is given.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*entity.Store, error) {
	var row storeRow

	query := repo.viewerScoped(repo.db.WithContext(ctx), viewerID).
		Where("stores.id = ?", id)

	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by ID")
	}

	return toStoreDomain(&row), nil
}

// FindByOwner retrieves the store owned by the given user.
func (repo *storeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by owner")
	}

	return toStoreDomain(&storeRow{StoreModel: storeM}), nil
}

// EmailInUse reports whether any store other than exclude holds the email.
func (repo *storeRepository) EmailInUse(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	var count int64

	query := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("email = ?", email)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check store email usage")
	}

	return count > 0, nil
}

// Create persists a new store.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrStoreEmailExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOwnerNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	// Update the entity with generated values
	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Update modifies an existing store.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	result := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", store.ID).
		Updates(map[string]any{
			"name":     storeM.Name,
			"email":    storeM.Email,
			"address":  storeM.Address,
			"owner_id": storeM.OwnerID,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrStoreEmailExists
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrOwnerNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// Delete removes a store; its ratings cascade at the database level.
func (repo *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.StoreModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// List returns a page of stores plus the total count under the same filter.
func (repo *storeRepository) List(ctx context.Context, params repository.ListStoresParams) ([]*entity.Store, int64, error) {
	filter := func(query *gorm.DB) *gorm.DB {
		if params.Search != "" {
			pattern := "%" + params.Search + "%"
			query = query.Where("stores.name ILIKE ? OR stores.address ILIKE ?", pattern, pattern)
		}

		return query
	}

	var total int64
	if err := filter(repo.db.WithContext(ctx).Model(&model.StoreModel{})).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count stores")
	}

	// Sort comes from repository.SanitizeSort, safe against injection.
	order := "stores." + params.Sort.Field + " " + params.Sort.Order
	if params.Sort.Field == "average_rating" {
		// Unrated stores sink to the end regardless of direction.
		order += " NULLS LAST"
	}

	var rows []*storeRow
	if err := filter(repo.viewerScoped(repo.db.WithContext(ctx), params.ViewerID)).
		Order(order).
		Limit(params.Page.Limit()).
		Offset(params.Page.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list stores")
	}

	stores := make([]*entity.Store, 0, len(rows))
	for _, row := range rows {
		stores = append(stores, toStoreDomain(row))
	}

	return stores, total, nil
}

// RefreshAggregates recomputes average_rating and total_ratings from the
// store's current ratings. Meant to run inside the transaction that changed
// the ratings.
func (repo *storeRepository) RefreshAggregates(ctx context.Context, storeID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Exec(`
		UPDATE stores
		SET average_rating = agg.avg_rating,
		    total_ratings  = agg.total,
		    updated_at     = NOW()
		FROM (
			SELECT ROUND(AVG(rating)::numeric, 2) AS avg_rating, COUNT(*) AS total
			FROM ratings
			WHERE store_id = ?
		) AS agg
		WHERE stores.id = ?`, storeID, storeID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to refresh store aggregates")
	}

	return nil
}

// Count returns the total number of stores.
func (repo *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count stores")
	}

	return count, nil
}

// viewerScoped attaches the viewer's own rating to each selected store row.
// Without a viewer it selects plain store columns so storeRow.ViewerRating
// stays nil.
func (repo *storeRepository) viewerScoped(query *gorm.DB, viewerID *uuid.UUID) *gorm.DB {
	query = query.Model(&model.StoreModel{})
	if viewerID == nil {
		return query.Select("stores.*")
	}

	return query.
		Select("stores.*, viewer_ratings.rating AS viewer_rating").
		Joins("LEFT JOIN ratings AS viewer_ratings ON viewer_ratings.store_id = stores.id AND viewer_ratings.user_id = ?", *viewerID)
}

// toStoreDomain converts a joined store row to a domain entity.
func toStoreDomain(row *storeRow) *entity.Store {
	return &entity.Store{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Address:       row.Address,
		OwnerID:       row.OwnerID,
		AverageRating: row.AverageRating,
		TotalRatings:  row.TotalRatings,
		ViewerRating:  row.ViewerRating,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

// fromStoreDomain converts a domain entity to a GORM model.
func fromStoreDomain(store *entity.Store) *model.StoreModel {
	return &model.StoreModel{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
		CreatedAt:     store.CreatedAt,
		UpdatedAt:     store.UpdatedAt,
	}
}
