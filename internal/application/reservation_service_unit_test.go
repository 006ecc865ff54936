package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
	"github.com/Abdullah-1719/ChaletF/internal/infrastructure/memory"
	"github.com/Abdullah-1719/ChaletF/internal/infrastructure/mq"
)

// === Mock implementations ===

// MockSnapshotCache はSnapshotCacheのモック
type MockSnapshotCache struct {
	mock.Mock
}

func (m *MockSnapshotCache) GetListing(ctx context.Context) (reservation.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(reservation.Listing), args.Error(1)
}

func (m *MockSnapshotCache) SetListing(ctx context.Context, listing reservation.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockSnapshotCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher はEventPublisherのモック
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, eventType mq.EventType, date, name string) error {
	args := m.Called(ctx, eventType, date, name)
	return args.Error(0)
}

// 引数はインターフェース型: nil リテラルを渡せば無効化された状態になる
func newServiceWithMocks(cache SnapshotCache, publisher EventPublisher) *ReservationService {
	s := NewReservationService(memory.NewReservationRepository(), cache, publisher, nil)
	s.now = func() time.Time { return testToday }
	return s
}

func TestCreateReservation_InvalidatesCacheAndPublishes(t *testing.T) {
	cache := new(MockSnapshotCache)
	publisher := new(MockEventPublisher)
	service := newServiceWithMocks(cache, publisher)

	cache.On("Invalidate", mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mq.EventReservationCreated, "2025-06-10", "Alice").Return(nil)

	_, err := service.CreateReservation(context.Background(), "Alice", "2025-06-10")
	require.NoError(t, err)

	cache.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateReservation_ValidationFailureSkipsSideEffects(t *testing.T) {
	cache := new(MockSnapshotCache)
	publisher := new(MockEventPublisher)
	service := newServiceWithMocks(cache, publisher)

	_, err := service.CreateReservation(context.Background(), "", "2025-06-10")
	assert.ErrorIs(t, err, reservation.ErrNameRequired)

	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReservation_SideEffectFailureDoesNotFailRequest(t *testing.T) {
	cache := new(MockSnapshotCache)
	publisher := new(MockEventPublisher)
	service := newServiceWithMocks(cache, publisher)

	cache.On("Invalidate", mock.Anything).Return(errors.New("redis down"))
	publisher.On("Publish", mock.Anything, mq.EventReservationCreated, "2025-06-10", "Alice").
		Return(errors.New("amqp down"))

	// キャッシュ・MQの障害で予約自体は失敗しない
	_, err := service.CreateReservation(context.Background(), "Alice", "2025-06-10")
	assert.NoError(t, err)
}

func TestCancelReservation_PublishesCancelledEvent(t *testing.T) {
	cache := new(MockSnapshotCache)
	publisher := new(MockEventPublisher)
	service := newServiceWithMocks(cache, publisher)

	cache.On("Invalidate", mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mq.EventReservationCreated, "2025-06-10", "Alice").Return(nil)
	publisher.On("Publish", mock.Anything, mq.EventReservationCancelled, "2025-06-10", "").Return(nil)

	ctx := context.Background()
	_, err := service.CreateReservation(ctx, "Alice", "2025-06-10")
	require.NoError(t, err)
	require.NoError(t, service.CancelReservation(ctx, "2025-06-10"))

	publisher.AssertExpectations(t)
}

func TestListAll_CacheHitSkipsStore(t *testing.T) {
	cache := new(MockSnapshotCache)
	service := newServiceWithMocks(cache, nil)

	cached := reservation.Listing{"2025-06-15": {Name: "Carl"}}
	cache.On("GetListing", mock.Anything).Return(cached, nil)

	listing, err := service.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, listing)
	cache.AssertExpectations(t)
}

func TestListAll_CacheMissFallsBackAndWarms(t *testing.T) {
	cache := new(MockSnapshotCache)
	service := newServiceWithMocks(cache, nil)

	cache.On("GetListing", mock.Anything).Return(nil, errors.New("cache miss"))
	cache.On("SetListing", mock.Anything, mock.AnythingOfType("reservation.Listing")).Return(nil)
	cache.On("Invalidate", mock.Anything).Return(nil)

	ctx := context.Background()
	_, err := service.CreateReservation(ctx, "Carl", "2025-06-15")
	require.NoError(t, err)

	listing, err := service.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Carl", listing["2025-06-15"].Name)
	cache.AssertExpectations(t)
}
