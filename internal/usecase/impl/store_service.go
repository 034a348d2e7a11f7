package impl

import (
	"context"
	"log/slog"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// storeService implements the StoreUsecase interface.
type storeService struct {
	txManager  repository.TransactionManager
	storeRepo  repository.StoreRepository
	userRepo   repository.UserRepository
	ratingRepo repository.RatingRepository
	logger     *slog.Logger
}

// StoreServiceParams holds dependencies for storeService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	StoreRepo  repository.StoreRepository
	UserRepo   repository.UserRepository
	RatingRepo repository.RatingRepository
	Logger     *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		txManager:  params.TxManager,
		storeRepo:  params.StoreRepo,
		userRepo:   params.UserRepo,
		ratingRepo: params.RatingRepo,
		logger:     params.Logger,
	}
}

func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListStores returns a page of stores with optional substring search.
func (srv *storeService) ListStores(ctx context.Context, input usecase.ListStoresInput) (*usecase.StoreListOutput, error) {
	params := repository.ListStoresParams{
		Search:   input.Search,
		ViewerID: input.Viewer,
		Sort:     repository.SanitizeSort(input.Sort, usecase.StoreSortFields),
		Page:     repository.NewPageable(input.Page, input.Size),
	}

	stores, total, err := srv.storeRepo.List(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	outputs := make([]*usecase.StoreOutput, 0, len(stores))
	for _, store := range stores {
		outputs = append(outputs, usecase.NewStoreOutput(store))
	}

	return &usecase.StoreListOutput{
		Stores:     outputs,
		Pagination: usecase.NewPagination(params.Page, total),
	}, nil
}

// GetStore returns one store, with the viewer's own rating when given.
func (srv *storeService) GetStore(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*usecase.StoreOutput, error) {
	store, err := srv.storeRepo.FindByID(ctx, id, viewer)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	return usecase.NewStoreOutput(store), nil
}

// CreateStore creates a store. A given owner must exist and hold the
// store_owner role.
func (srv *storeService) CreateStore(ctx context.Context, input usecase.CreateStoreInput) (*usecase.StoreOutput, error) {
	ownerID, err := parseOptionalUUID(input.OwnerID)
	if err != nil {
		return nil, domainerrors.ErrOwnerNotFound
	}

	store := &entity.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: ownerID,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		userRepo := repoFactory.UserRepo()

		if ownerID != nil {
			if err := validateOwner(ctx, userRepo, *ownerID); err != nil {
				return err
			}
		}

		inUse, err := storeRepo.EmailInUse(ctx, input.Email, uuid.Nil)
		if err != nil {
			return errors.Wrap(err, "failed to check store email usage")
		}
		if inUse {
			return domainerrors.ErrStoreEmailExists
		}

		return storeRepo.Create(ctx, store)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Store created", slog.Any("storeID", store.ID))

	return usecase.NewStoreOutput(store), nil
}

// UpdateStore applies a partial update. Only an admin or the current owner
// may update; only an admin may reassign ownership.
func (srv *storeService) UpdateStore(ctx context.Context, id uuid.UUID, input usecase.UpdateStoreInput, requester *entity.User) (*usecase.StoreOutput, error) {
	if input.Name == nil && input.Email == nil && input.Address == nil && input.OwnerID == nil {
		return nil, domainerrors.ErrNoUpdatableFields
	}

	var updated *entity.Store
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		userRepo := repoFactory.UserRepo()

		store, err := storeRepo.FindByID(ctx, id, nil)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domainerrors.ErrStoreNotFound
			}

			return errors.Wrap(err, "failed to find store")
		}

		isOwner := store.OwnerID != nil && *store.OwnerID == requester.ID
		if requester.Role != entity.RoleAdmin && !isOwner {
			return domainerrors.ErrAccessDenied
		}
		if input.OwnerID != nil && requester.Role != entity.RoleAdmin {
			return domainerrors.ErrAccessDenied
		}

		if input.Email != nil && *input.Email != store.Email {
			inUse, err := storeRepo.EmailInUse(ctx, *input.Email, id)
			if err != nil {
				return errors.Wrap(err, "failed to check store email usage")
			}
			if inUse {
				return domainerrors.ErrEmailTaken
			}
			store.Email = *input.Email
		}
		if input.Name != nil {
			store.Name = *input.Name
		}
		if input.Address != nil {
			store.Address = *input.Address
		}
		if input.OwnerID != nil {
			ownerID, err := parseOptionalUUID(input.OwnerID)
			if err != nil {
				return domainerrors.ErrOwnerNotFound
			}
			if ownerID != nil {
				if err := validateOwner(ctx, userRepo, *ownerID); err != nil {
					return err
				}
			}
			store.OwnerID = ownerID
		}

		if err := storeRepo.Update(ctx, store); err != nil {
			return err
		}
		updated = store

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Store updated", slog.Any("storeID", id), slog.Any("requesterID", requester.ID))

	return usecase.NewStoreOutput(updated), nil
}

// DeleteStore removes a store; its ratings cascade.
func (srv *storeService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	if err := srv.storeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return domainerrors.ErrStoreNotFound
		}

		return errors.Wrap(err, "failed to delete store")
	}

	srv.log(ctx).Info("Store deleted", slog.Any("storeID", id))

	return nil
}

// GetStoreRatings returns all ratings for a store with rater identity.
func (srv *storeService) GetStoreRatings(ctx context.Context, id uuid.UUID, requester *entity.User) (*usecase.StoreRatingsOutput, error) {
	store, err := srv.storeRepo.FindByID(ctx, id, nil)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	isOwner := store.OwnerID != nil && *store.OwnerID == requester.ID
	if requester.Role != entity.RoleAdmin && !isOwner {
		return nil, domainerrors.ErrAccessDenied
	}

	ratings, err := srv.ratingRepo.ListByStore(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store ratings")
	}

	raters := make([]*usecase.StoreRaterOutput, 0, len(ratings))
	for _, rating := range ratings {
		rater := &usecase.StoreRaterOutput{
			ID:        rating.ID,
			Rating:    rating.Rating,
			CreatedAt: rating.CreatedAt,
			UpdatedAt: rating.UpdatedAt,
			UserID:    rating.UserID,
		}
		if rating.User != nil {
			rater.UserName = rating.User.Name
			rater.UserEmail = rating.User.Email
		}
		raters = append(raters, rater)
	}

	return &usecase.StoreRatingsOutput{
		Store: &usecase.StoreSummaryOutput{
			ID:            store.ID,
			Name:          store.Name,
			AverageRating: store.AverageRating,
		},
		Ratings: raters,
	}, nil
}

// validateOwner checks that the given user exists and may own a store.
func validateOwner(ctx context.Context, userRepo repository.UserRepository, ownerID uuid.UUID) error {
	owner, err := userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrOwnerNotFound
		}

		return errors.Wrap(err, "failed to find owner")
	}
	if owner.Role != entity.RoleStoreOwner {
		return domainerrors.ErrOwnerRoleRequired
	}

	return nil
}

// parseOptionalUUID parses a nullable UUID string; nil and "" both mean unset.
func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}

	return &id, nil
}
