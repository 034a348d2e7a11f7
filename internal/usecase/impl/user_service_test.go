package impl

import (
	"context"
	"testing"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest(m *serviceMocks) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		TxManager:  m.txManager,
		UserRepo:   m.userRepo,
		StoreRepo:  m.storeRepo,
		RatingRepo: m.ratingRepo,
		Hasher:     m.hasher,
		Logger:     testLogger(),
	})
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_ListUsers_SanitizesSort(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	m.userRepo.On("List", ctx, mock.MatchedBy(func(params repository.ListUsersParams) bool {
		// Unknown sort fields fall back to created_at DESC.
		return params.Sort.Field == "created_at" && params.Sort.Order == "DESC"
	})).Return([]*entity.User{}, int64(0), nil)

	output, err := service.ListUsers(ctx, usecase.ListUsersInput{Sort: "password_hash:ASC"})
	require.NoError(t, err)
	assert.Empty(t, output.Users)
	assert.Equal(t, 0, output.Pagination.TotalPages)
}

func TestUserService_ListUsers_Pagination(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	users := []*entity.User{
		{ID: uuid.New(), Name: "A", Role: entity.RoleUser},
		{ID: uuid.New(), Name: "B", Role: entity.RoleUser},
	}
	m.userRepo.On("List", ctx, mock.Anything).Return(users, int64(12), nil)

	output, err := service.ListUsers(ctx, usecase.ListUsersInput{Page: 1, Size: 5})
	require.NoError(t, err)
	assert.Len(t, output.Users, 2)
	assert.Equal(t, 1, output.Pagination.CurrentPage)
	assert.Equal(t, 3, output.Pagination.TotalPages)
	assert.Equal(t, int64(12), output.Pagination.TotalItems)
	assert.Equal(t, 5, output.Pagination.ItemsPerPage)
}

func TestUserService_GetUser_StoreOwnerCarriesStoreRating(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	owner := &entity.User{ID: uuid.New(), Role: entity.RoleStoreOwner}
	avg := 4.25
	m.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	m.storeRepo.On("FindByOwner", ctx, owner.ID).Return(&entity.Store{AverageRating: &avg}, nil)

	output, err := service.GetUser(ctx, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, output.Rating)
	assert.Equal(t, avg, *output.Rating)
}

func TestUserService_GetUser_RegularUserHasNilRating(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	output, err := service.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, output.Rating)
	m.storeRepo.AssertNotCalled(t, "FindByOwner", mock.Anything, mock.Anything)
}

func TestUserService_UpdateUser_EmptyPatch(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}

	output, err := service.UpdateUser(ctx, uuid.New(), usecase.UpdateUserInput{}, admin)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrNoUpdatableFields))
}

func TestUserService_UpdateUser_NonAdminCannotUpdateOthers(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	requester := &entity.User{ID: uuid.New(), Role: entity.RoleUser}

	output, err := service.UpdateUser(ctx, uuid.New(), usecase.UpdateUserInput{Name: strPtr("Somebody Else Entirely Here")}, requester)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccessDenied))
}

func TestUserService_UpdateUser_NonAdminCannotChangeRole(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	requester := &entity.User{ID: uuid.New(), Role: entity.RoleUser}

	output, err := service.UpdateUser(ctx, requester.ID, usecase.UpdateUserInput{Role: strPtr("admin")}, requester)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccessDenied))
}

func TestUserService_UpdateUser_EmailTaken(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	target := &entity.User{ID: uuid.New(), Email: "old@example.com", Role: entity.RoleUser}
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}

	m.userRepo.On("FindByID", ctx, target.ID).Return(target, nil)
	m.userRepo.On("EmailInUse", ctx, "new@example.com", target.ID).Return(true, nil)

	output, err := service.UpdateUser(ctx, target.ID, usecase.UpdateUserInput{Email: strPtr("new@example.com")}, admin)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestUserService_UpdateUser_AdminChangesRole(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	target := &entity.User{ID: uuid.New(), Email: "old@example.com", Role: entity.RoleUser}
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}

	m.userRepo.On("FindByID", ctx, target.ID).Return(target, nil)
	m.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleStoreOwner
	})).Return(nil)

	output, err := service.UpdateUser(ctx, target.ID, usecase.UpdateUserInput{Role: strPtr("store_owner")}, admin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStoreOwner, output.Role)
}

func TestUserService_DeleteUser_Self(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}

	err := service.DeleteUser(ctx, admin.ID, admin)
	assert.True(t, errors.Is(err, domainerrors.ErrSelfDeletion))
	m.userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	target := uuid.New()
	m.ratingRepo.On("StoreIDsByUser", ctx, target).Return([]uuid.UUID{}, nil)
	m.userRepo.On("Delete", ctx, target).Return(repository.ErrUserNotFound)

	err := service.DeleteUser(ctx, target, admin)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_DeleteUser_Success(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	target := uuid.New()
	m.ratingRepo.On("StoreIDsByUser", ctx, target).Return([]uuid.UUID{}, nil)
	m.userRepo.On("Delete", ctx, target).Return(nil)

	err := service.DeleteUser(ctx, target, admin)
	require.NoError(t, err)
	m.userRepo.AssertExpectations(t)
	m.storeRepo.AssertNotCalled(t, "RefreshAggregates", mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser_RefreshesRatedStoreAggregates(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	target := uuid.New()
	storeA := uuid.New()
	storeB := uuid.New()

	m.ratingRepo.On("StoreIDsByUser", ctx, target).Return([]uuid.UUID{storeA, storeB}, nil)
	m.userRepo.On("Delete", ctx, target).Return(nil)
	m.storeRepo.On("RefreshAggregates", ctx, storeA).Return(nil)
	m.storeRepo.On("RefreshAggregates", ctx, storeB).Return(nil)

	err := service.DeleteUser(ctx, target, admin)
	require.NoError(t, err)
	m.storeRepo.AssertNumberOfCalls(t, "RefreshAggregates", 2)
}

func TestUserService_DashboardStats(t *testing.T) {
	m := newServiceMocks()
	service := newUserServiceForTest(m)
	ctx := context.Background()

	m.userRepo.On("Count", ctx).Return(int64(7), nil)
	m.storeRepo.On("Count", ctx).Return(int64(3), nil)
	m.ratingRepo.On("Count", ctx).Return(int64(21), nil)

	stats, err := service.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalStores)
	assert.Equal(t, int64(21), stats.TotalRatings)
}
