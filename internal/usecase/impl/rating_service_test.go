package impl

import (
	"context"
	"testing"
	"time"

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

func newRatingServiceForTest(m *serviceMocks) usecase.RatingUsecase {
	return NewRatingService(RatingServiceParams{
		TxManager:  m.txManager,
		RatingRepo: m.ratingRepo,
		Logger:     testLogger(),
	})
}

func TestRatingService_SubmitRating_InsertPath(t *testing.T) {
	m := newServiceMocks()
	service := newRatingServiceForTest(m)
	ctx := context.Background()

	userID := uuid.New()
	store := &entity.Store{ID: uuid.New()}

	m.storeRepo.On("FindByID", ctx, store.ID, (*uuid.UUID)(nil)).Return(store, nil)
	m.ratingRepo.On("FindForUpdate", ctx, userID, store.ID).Return(nil, repository.ErrRatingNotFound)
	m.ratingRepo.On("Create", ctx, mock.MatchedBy(func(r *entity.Rating) bool {
		return r.UserID == userID && r.StoreID == store.ID && r.Rating == 5
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Rating).ID = uuid.New()
	}).Return(nil)
	m.storeRepo.On("RefreshAggregates", ctx, store.ID).Return(nil)

	output, err := service.SubmitRating(ctx, userID, usecase.SubmitRatingInput{
		StoreID: store.ID.String(),
		Rating:  5,
	})
	require.NoError(t, err)
	assert.False(t, output.Updated)
	assert.Equal(t, 5, output.Rating.Rating)
	m.storeRepo.AssertCalled(t, "RefreshAggregates", ctx, store.ID)
}

func TestRatingService_SubmitRating_UpdatePath(t *testing.T) {
	m := newServiceMocks()
	service := newRatingServiceForTest(m)
	ctx := context.Background()

	userID := uuid.New()
	store := &entity.Store{ID: uuid.New()}
	createdAt := time.Now().Add(-time.Hour)
	savedAt := time.Now()
	existing := &entity.Rating{
		ID:        uuid.New(),
		UserID:    userID,
		StoreID:   store.ID,
		Rating:    2,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	m.storeRepo.On("FindByID", ctx, store.ID, (*uuid.UUID)(nil)).Return(store, nil)
	m.ratingRepo.On("FindForUpdate", ctx, userID, store.ID).Return(existing, nil)
	m.ratingRepo.On("Update", ctx, mock.MatchedBy(func(r *entity.Rating) bool {
		return r.ID == existing.ID && r.Rating == 4
	})).Run(func(args mock.Arguments) {
		// The repository refreshes the entity's timestamps from the row.
		args.Get(1).(*entity.Rating).UpdatedAt = savedAt
	}).Return(nil)
	m.storeRepo.On("RefreshAggregates", ctx, store.ID).Return(nil)

	output, err := service.SubmitRating(ctx, userID, usecase.SubmitRatingInput{
		StoreID: store.ID.String(),
		Rating:  4,
	})
	require.NoError(t, err)
	assert.True(t, output.Updated)
	assert.Equal(t, 4, output.Rating.Rating)
	assert.True(t, output.Rating.UpdatedAt.Equal(savedAt))
	assert.True(t, output.Rating.UpdatedAt.After(output.Rating.CreatedAt))
	m.ratingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRatingService_SubmitRating_StoreMissing(t *testing.T) {
	m := newServiceMocks()
	service := newRatingServiceForTest(m)
	ctx := context.Background()

	storeID := uuid.New()
	m.storeRepo.On("FindByID", ctx, storeID, (*uuid.UUID)(nil)).Return(nil, repository.ErrStoreNotFound)

	output, err := service.SubmitRating(ctx, uuid.New(), usecase.SubmitRatingInput{
		StoreID: storeID.String(),
		Rating:  3,
	})
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrStoreNotFound))
}

func TestRatingService_SubmitRating_ConcurrentInsertLoses(t *testing.T) {
	m := newServiceMocks()
	service := newRatingServiceForTest(m)
	ctx := context.Background()

	userID := uuid.New()
	store := &entity.Store{ID: uuid.New()}

	m.storeRepo.On("FindByID", ctx, store.ID, (*uuid.UUID)(nil)).Return(store, nil)
	m.ratingRepo.On("FindForUpdate", ctx, userID, store.ID).Return(nil, repository.ErrRatingNotFound)
	m.ratingRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateRating)

	output, err := service.SubmitRating(ctx, userID, usecase.SubmitRatingInput{
		StoreID: store.ID.String(),
		Rating:  3,
	})
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrRatingConflict))
	m.storeRepo.AssertNotCalled(t, "RefreshAggregates", mock.Anything, mock.Anything)
}

func TestRatingService_DeleteRating_AuthorizationMatrix(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name      string
		requester *entity.User
		wantErr   error
	}{
		{name: "owner may delete", requester: &entity.User{ID: ownerID, Role: entity.RoleUser}},
		{name: "admin may delete", requester: &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}},
		{name: "stranger is denied", requester: &entity.User{ID: uuid.New(), Role: entity.RoleUser}, wantErr: domainerrors.ErrAccessDenied},
		{name: "store owner role does not help", requester: &entity.User{ID: uuid.New(), Role: entity.RoleStoreOwner}, wantErr: domainerrors.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks()
			service := newRatingServiceForTest(m)
			ctx := context.Background()

			rating := &entity.Rating{ID: uuid.New(), UserID: ownerID, StoreID: uuid.New()}
			m.ratingRepo.On("FindByID", ctx, rating.ID).Return(rating, nil)
			if tt.wantErr == nil {
				m.ratingRepo.On("Delete", ctx, rating.ID).Return(nil)
				m.storeRepo.On("RefreshAggregates", ctx, rating.StoreID).Return(nil)
			}

			err := service.DeleteRating(ctx, rating.ID, tt.requester)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				m.ratingRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				m.storeRepo.AssertCalled(t, "RefreshAggregates", ctx, rating.StoreID)
			}
		})
	}
}

func TestRatingService_DeleteRating_NotFound(t *testing.T) {
	m := newServiceMocks()
	service := newRatingServiceForTest(m)
	ctx := context.Background()

	id := uuid.New()
	m.ratingRepo.On("FindByID", ctx, id).Return(nil, repository.ErrRatingNotFound)

	err := service.DeleteRating(ctx, id, &entity.User{ID: uuid.New(), Role: entity.RoleAdmin})
	assert.True(t, errors.Is(err, domainerrors.ErrRatingNotFound))
}

func TestRatingService_ListUserRatings_JoinsStore(t *testing.T) {
	m := newServiceMocks()
	service := newRatingServiceForTest(m)
	ctx := context.Background()

	userID := uuid.New()
	store := &entity.Store{ID: uuid.New(), Name: "Corner Shop", Address: "42 Main Street"}
	ratings := []*entity.Rating{{ID: uuid.New(), UserID: userID, StoreID: store.ID, Rating: 5, Store: store}}

	m.ratingRepo.On("ListByUser", ctx, userID, repository.NewPageable(0, 10)).Return(ratings, int64(1), nil)

	output, err := service.ListUserRatings(ctx, userID, 0, 10)
	require.NoError(t, err)
	require.Len(t, output.Ratings, 1)
	assert.Equal(t, "Corner Shop", output.Ratings[0].StoreName)
	assert.Equal(t, "42 Main Street", output.Ratings[0].StoreAddress)
	assert.Equal(t, int64(1), output.Pagination.TotalItems)
}

func TestRatingService_ListAllRatings_Filtered(t *testing.T) {
	m := newServiceMocks()
	service := newRatingServiceForTest(m)
	ctx := context.Background()

	storeID := uuid.New()
	store := &entity.Store{ID: storeID, Name: "Corner Shop"}
	rater := &entity.User{ID: uuid.New(), Name: "A Rater", Email: "rater@example.com"}
	ratings := []*entity.Rating{{ID: uuid.New(), UserID: rater.ID, StoreID: storeID, Rating: 2, Store: store, User: rater}}

	m.ratingRepo.On("List", ctx, mock.MatchedBy(func(params repository.ListRatingsParams) bool {
		return params.StoreID != nil && *params.StoreID == storeID && params.UserID == nil
	})).Return(ratings, int64(1), nil)

	output, err := service.ListAllRatings(ctx, usecase.ListRatingsInput{StoreID: &storeID})
	require.NoError(t, err)
	require.Len(t, output.Ratings, 1)
	assert.Equal(t, "Corner Shop", output.Ratings[0].StoreName)
	assert.Equal(t, "rater@example.com", output.Ratings[0].UserEmail)
}
