package impl

import (
	"context"

	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Hand-written testify mocks for the repository and service interfaces the
// usecases depend on.

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) EmailInUse(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, exclude)

	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockUserRepository) List(ctx context.Context, params repository.ListUsersParams) ([]*entity.User, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]*entity.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockStoreRepository struct {
	mock.Mock
}

func (m *mockStoreRepository) FindByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *mockStoreRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *mockStoreRepository) EmailInUse(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, exclude)

	return args.Bool(0), args.Error(1)
}

func (m *mockStoreRepository) Create(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)

	return args.Error(0)
}

func (m *mockStoreRepository) Update(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)

	return args.Error(0)
}

func (m *mockStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockStoreRepository) List(ctx context.Context, params repository.ListStoresParams) ([]*entity.Store, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]*entity.Store), args.Get(1).(int64), args.Error(2)
}

func (m *mockStoreRepository) RefreshAggregates(ctx context.Context, storeID uuid.UUID) error {
	args := m.Called(ctx, storeID)

	return args.Error(0)
}

func (m *mockStoreRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *mockRatingRepository) FindForUpdate(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *mockRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)

	return args.Error(0)
}

func (m *mockRatingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)

	return args.Error(0)
}

func (m *mockRatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockRatingRepository) StoreIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockRatingRepository) ListByUser(ctx context.Context, userID uuid.UUID, page repository.Pageable) ([]*entity.Rating, int64, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]*entity.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *mockRatingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Rating), args.Error(1)
}

func (m *mockRatingRepository) List(ctx context.Context, params repository.ListRatingsParams) ([]*entity.Rating, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}

	return args.Get(0).([]*entity.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *mockRatingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(user *entity.User) (string, error) {
	args := m.Called(user)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

// fakeRepoFactory hands the test's mocks to transactional code.
type fakeRepoFactory struct {
	users   repository.UserRepository
	stores  repository.StoreRepository
	ratings repository.RatingRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return f.users
}

func (f *fakeRepoFactory) StoreRepo() repository.StoreRepository {
	return f.stores
}

func (f *fakeRepoFactory) RatingRepo() repository.RatingRepository {
	return f.ratings
}

// fakeTxManager runs the callback immediately against the fake factory,
// standing in for a real transaction.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}
