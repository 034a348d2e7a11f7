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

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	txManager  repository.TransactionManager
	ratingRepo repository.RatingRepository
	logger     *slog.Logger
}

// RatingServiceParams holds dependencies for ratingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	RatingRepo repository.RatingRepository
	Logger     *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(params RatingServiceParams) usecase.RatingUsecase {
	return &ratingService{
		txManager:  params.TxManager,
		ratingRepo: params.RatingRepo,
		logger:     params.Logger,
	}
}

func (srv *ratingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitRating inserts or updates the user's rating for a store and
// recomputes the store's aggregates, all inside one transaction. The
// (user, store) row is lock-read first so concurrent resubmissions
// serialize instead of racing.
func (srv *ratingService) SubmitRating(ctx context.Context, userID uuid.UUID, input usecase.SubmitRatingInput) (*usecase.SubmitRatingOutput, error) {
	storeID, err := uuid.Parse(input.StoreID)
	if err != nil {
		return nil, domainerrors.ErrStoreNotFound
	}

	var output *usecase.SubmitRatingOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		if _, err := storeRepo.FindByID(ctx, storeID, nil); err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domainerrors.ErrStoreNotFound
			}

			return errors.Wrap(err, "failed to find store")
		}

		rating, err := ratingRepo.FindForUpdate(ctx, userID, storeID)
		updated := false
		switch {
		case err == nil:
			rating.Rating = input.Rating
			if err := ratingRepo.Update(ctx, rating); err != nil {
				return err
			}
			updated = true
		case errors.Is(err, repository.ErrRatingNotFound):
			rating = &entity.Rating{
				UserID:  userID,
				StoreID: storeID,
				Rating:  input.Rating,
			}
			if err := ratingRepo.Create(ctx, rating); err != nil {
				// A concurrent first submission won the unique constraint.
				if errors.Is(err, repository.ErrDuplicateRating) {
					return domainerrors.ErrRatingConflict
				}

				return err
			}
		default:
			return errors.Wrap(err, "failed to lock rating")
		}

		if err := storeRepo.RefreshAggregates(ctx, storeID); err != nil {
			return err
		}

		output = &usecase.SubmitRatingOutput{
			Rating:  usecase.NewRatingOutput(rating),
			Updated: updated,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Rating submitted",
		slog.Any("userID", userID),
		slog.Any("storeID", storeID),
		slog.Bool("updated", output.Updated),
	)

	return output, nil
}

// DeleteRating removes a rating and recomputes the store's aggregates in one
// transaction. Only the rating's owner or an admin may delete it.
func (srv *ratingService) DeleteRating(ctx context.Context, ratingID uuid.UUID, requester *entity.User) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		rating, err := ratingRepo.FindByID(ctx, ratingID)
		if err != nil {
			if errors.Is(err, repository.ErrRatingNotFound) {
				return domainerrors.ErrRatingNotFound
			}

			return errors.Wrap(err, "failed to find rating")
		}

		if requester.Role != entity.RoleAdmin && rating.UserID != requester.ID {
			return domainerrors.ErrAccessDenied
		}

		if err := ratingRepo.Delete(ctx, ratingID); err != nil {
			return err
		}

		return storeRepo.RefreshAggregates(ctx, rating.StoreID)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Rating deleted", slog.Any("ratingID", ratingID), slog.Any("requesterID", requester.ID))

	return nil
}

// ListUserRatings returns the user's rating history joined with store
// identity, most recently updated first.
func (srv *ratingService) ListUserRatings(ctx context.Context, userID uuid.UUID, page, size int) (*usecase.UserRatingListOutput, error) {
	pageable := repository.NewPageable(page, size)

	ratings, total, err := srv.ratingRepo.ListByUser(ctx, userID, pageable)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user ratings")
	}

	outputs := make([]*usecase.UserRatingOutput, 0, len(ratings))
	for _, rating := range ratings {
		output := &usecase.UserRatingOutput{
			ID:        rating.ID,
			Rating:    rating.Rating,
			CreatedAt: rating.CreatedAt,
			UpdatedAt: rating.UpdatedAt,
			StoreID:   rating.StoreID,
		}
		if rating.Store != nil {
			output.StoreName = rating.Store.Name
			output.StoreAddress = rating.Store.Address
		}
		outputs = append(outputs, output)
	}

	return &usecase.UserRatingListOutput{
		Ratings:    outputs,
		Pagination: usecase.NewPagination(pageable, total),
	}, nil
}

// ListAllRatings returns the platform-wide listing with optional filters.
func (srv *ratingService) ListAllRatings(ctx context.Context, input usecase.ListRatingsInput) (*usecase.AdminRatingListOutput, error) {
	params := repository.ListRatingsParams{
		StoreID: input.StoreID,
		UserID:  input.UserID,
		Page:    repository.NewPageable(input.Page, input.Size),
	}

	ratings, total, err := srv.ratingRepo.List(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	outputs := make([]*usecase.AdminRatingOutput, 0, len(ratings))
	for _, rating := range ratings {
		output := &usecase.AdminRatingOutput{
			ID:        rating.ID,
			Rating:    rating.Rating,
			CreatedAt: rating.CreatedAt,
			UpdatedAt: rating.UpdatedAt,
			StoreID:   rating.StoreID,
			UserID:    rating.UserID,
		}
		if rating.Store != nil {
			output.StoreName = rating.Store.Name
		}
		if rating.User != nil {
			output.UserName = rating.User.Name
			output.UserEmail = rating.User.Email
		}
		outputs = append(outputs, output)
	}

	return &usecase.AdminRatingListOutput{
		Ratings:    outputs,
		Pagination: usecase.NewPagination(params.Page, total),
	}, nil
}
