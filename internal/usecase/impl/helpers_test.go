package impl

import (
	"io"
	"log/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMocks struct {
	userRepo   *mockUserRepository
	storeRepo  *mockStoreRepository
	ratingRepo *mockRatingRepository
	hasher     *mockPasswordHasher
	tokens     *mockTokenService
	txManager  *fakeTxManager
}

func newServiceMocks() *serviceMocks {
	m := &serviceMocks{
		userRepo:   new(mockUserRepository),
		storeRepo:  new(mockStoreRepository),
		ratingRepo: new(mockRatingRepository),
		hasher:     new(mockPasswordHasher),
		tokens:     new(mockTokenService),
	}
	m.txManager = &fakeTxManager{factory: &fakeRepoFactory{
		users:   m.userRepo,
		stores:  m.storeRepo,
		ratings: m.ratingRepo,
	}}

	return m
}
