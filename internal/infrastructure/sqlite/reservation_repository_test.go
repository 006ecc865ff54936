package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
)

func newTestRepo(t *testing.T) *ReservationRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "chaletf_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func date(y int, m time.Month, d int) reservation.Date {
	return reservation.Date{Year: y, Month: m, Day: d}
}

func TestReservationRepository_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	d := date(2025, time.June, 10)

	require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Alice", d)))

	got, err := repo.GetByDate(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, d, got.Date)

	// 同じ日付への二重登録
	err = repo.Insert(ctx, reservation.NewReservation("Bob", d))
	assert.ErrorIs(t, err, reservation.ErrDateConflict)
}

func TestReservationRepository_Remove(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	d := date(2025, time.June, 10)

	require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Alice", d)))
	require.NoError(t, repo.Remove(ctx, d))

	_, err := repo.GetByDate(ctx, d)
	assert.ErrorIs(t, err, reservation.ErrNotFound)

	assert.ErrorIs(t, repo.Remove(ctx, d), reservation.ErrNotFound)

	// 削除後は同じ日付に再度予約できる
	require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Bob", d)))
}

func TestReservationRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("別の日付への移動", func(t *testing.T) {
		repo := newTestRepo(t)
		d1 := date(2025, time.June, 10)
		d2 := date(2025, time.June, 20)

		require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Alice", d1)))

		updated, err := repo.Update(ctx, d1, "Alicia", d2)
		require.NoError(t, err)
		assert.Equal(t, "Alicia", updated.Name)
		assert.Equal(t, d2, updated.Date)

		_, err = repo.GetByDate(ctx, d1)
		assert.ErrorIs(t, err, reservation.ErrNotFound)
	})

	t.Run("移動先が使用中なら失敗して元のレコードは残る", func(t *testing.T) {
		repo := newTestRepo(t)
		d1 := date(2025, time.June, 10)
		d2 := date(2025, time.June, 20)

		require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Alice", d1)))
		require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Bob", d2)))

		_, err := repo.Update(ctx, d1, "Alicia", d2)
		assert.ErrorIs(t, err, reservation.ErrDateConflict)

		got, err := repo.GetByDate(ctx, d1)
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
	})

	t.Run("存在しない日付はErrNotFound", func(t *testing.T) {
		repo := newTestRepo(t)
		_, err := repo.Update(ctx, date(2025, time.June, 10), "Alice", date(2025, time.June, 11))
		assert.ErrorIs(t, err, reservation.ErrNotFound)
	})
}

func TestReservationRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Carl", date(2025, time.July, 1))))
	require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Alice", date(2025, time.June, 5))))
	require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Bob", date(2025, time.June, 12))))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2025-06-05", list[0].Date.String())
	assert.Equal(t, "2025-06-12", list[1].Date.String())
	assert.Equal(t, "2025-07-01", list[2].Date.String())
}

func TestReservationRepository_SearchByName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Anna", date(2025, time.June, 5))))
	require.NoError(t, repo.Insert(ctx, reservation.NewReservation("JoAnne", date(2025, time.June, 10))))
	require.NoError(t, repo.Insert(ctx, reservation.NewReservation("Bob", date(2025, time.June, 15))))

	t.Run("部分一致検索", func(t *testing.T) {
		found, err := repo.SearchByName(ctx, "ann")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "Anna", found[0].Name)
		assert.Equal(t, "JoAnne", found[1].Name)
	})

	t.Run("空文字列は空の結果", func(t *testing.T) {
		found, err := repo.SearchByName(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("LIKEメタ文字はリテラル扱い", func(t *testing.T) {
		found, err := repo.SearchByName(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}
