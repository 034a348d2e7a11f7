package impl

import (
	"context"
	"log/slog"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	hasher     service.PasswordHasher
	logger     *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	UserRepo   repository.UserRepository
	StoreRepo  repository.StoreRepository
	RatingRepo repository.RatingRepository
	Hasher     service.PasswordHasher
	Logger     *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		storeRepo:  params.StoreRepo,
		ratingRepo: params.RatingRepo,
		hasher:     params.Hasher,
		logger:     params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns a page of the directory with optional search and role filter.
func (srv *userService) ListUsers(ctx context.Context, input usecase.ListUsersInput) (*usecase.UserListOutput, error) {
	params := repository.ListUsersParams{
		Search: input.Search,
		Role:   entity.Role(input.Role),
		Sort:   repository.SanitizeSort(input.Sort, usecase.UserSortFields),
		Page:   repository.NewPageable(input.Page, input.Size),
	}

	users, total, err := srv.userRepo.List(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	outputs := make([]*usecase.UserOutput, 0, len(users))
	for _, user := range users {
		outputs = append(outputs, usecase.NewUserOutput(user))
	}

	return &usecase.UserListOutput{
		Users:      outputs,
		Pagination: usecase.NewPagination(params.Page, total),
	}, nil
}

// GetUser returns a user; store owners carry their store's average rating.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*usecase.UserDetailOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	output := &usecase.UserDetailOutput{UserOutput: *usecase.NewUserOutput(user)}

	if user.Role == entity.RoleStoreOwner {
		store, err := srv.storeRepo.FindByOwner(ctx, user.ID)
		switch {
		case err == nil:
			output.Rating = store.AverageRating
		case errors.Is(err, repository.ErrStoreNotFound):
			// Owner without a store listing yet; rating stays null.
		default:
			return nil, errors.Wrap(err, "failed to find owned store")
		}
	}

	return output, nil
}

// CreateUser creates an account with an explicit role (default user).
func (srv *userService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*usecase.UserOutput, error) {
	role := entity.Role(input.Role)
	if input.Role == "" {
		role = entity.RoleUser
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Address:      input.Address,
		Role:         role,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		inUse, err := userRepo.EmailInUse(ctx, input.Email, uuid.Nil)
		if err != nil {
			return errors.Wrap(err, "failed to check email usage")
		}
		if inUse {
			return domainerrors.ErrUserEmailExists
		}

		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrUserEmailExists
			}

			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User created", slog.Any("userID", user.ID), slog.Any("role", role))

	return usecase.NewUserOutput(user), nil
}

// UpdateUser applies a partial update. Non-admins may only update themselves
// and may not change roles.
func (srv *userService) UpdateUser(ctx context.Context, id uuid.UUID, input usecase.UpdateUserInput, requester *entity.User) (*usecase.UserOutput, error) {
	if requester.Role != entity.RoleAdmin && requester.ID != id {
		return nil, domainerrors.ErrAccessDenied
	}
	if input.Role != nil && requester.Role != entity.RoleAdmin {
		return nil, domainerrors.ErrAccessDenied
	}
	if input.Name == nil && input.Email == nil && input.Address == nil && input.Role == nil {
		return nil, domainerrors.ErrNoUpdatableFields
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if input.Email != nil && *input.Email != user.Email {
			inUse, err := userRepo.EmailInUse(ctx, *input.Email, id)
			if err != nil {
				return errors.Wrap(err, "failed to check email usage")
			}
			if inUse {
				return domainerrors.ErrEmailTaken
			}
			user.Email = *input.Email
		}
		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Address != nil {
			user.Address = *input.Address
		}
		if input.Role != nil {
			user.Role = entity.Role(*input.Role)
		}

		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrEmailTaken
			}

			return errors.Wrap(err, "failed to update user")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User updated", slog.Any("userID", id), slog.Any("requesterID", requester.ID))

	return usecase.NewUserOutput(updated), nil
}

// DeleteUser removes an account. Requesters cannot delete themselves. The
// user's ratings cascade with the row, so every store they had rated gets its
// aggregates recomputed inside the same transaction.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID, requester *entity.User) error {
	if requester.ID == id {
		return domainerrors.ErrSelfDeletion
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		// Capture the rated stores before the cascade wipes the ratings.
		storeIDs, err := ratingRepo.StoreIDsByUser(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to list rated stores")
		}

		if err := userRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to delete user")
		}

		for _, storeID := range storeIDs {
			if err := storeRepo.RefreshAggregates(ctx, storeID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", id), slog.Any("requesterID", requester.ID))

	return nil
}

// DashboardStats returns the platform-wide counts for the admin dashboard.
func (srv *userService) DashboardStats(ctx context.Context) (*usecase.DashboardStatsOutput, error) {
	totalUsers, err := srv.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	totalStores, err := srv.storeRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count stores")
	}

	totalRatings, err := srv.ratingRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count ratings")
	}

	return &usecase.DashboardStatsOutput{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}, nil
}
