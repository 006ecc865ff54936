package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	date := Date{Year: 2025, Month: time.June, Day: 10}
	r := NewReservation("  Alice  ", date)

	require.NotEmpty(t, r.ID)
	assert.Equal(t, "Alice", r.Name)
	assert.Equal(t, date, r.Date)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
}

func TestReservation_Validate(t *testing.T) {
	date := Date{Year: 2025, Month: time.June, Day: 10}

	t.Run("有効な予約", func(t *testing.T) {
		r := NewReservation("Alice", date)
		assert.NoError(t, r.Validate())
	})

	t.Run("名前が空の場合はエラー", func(t *testing.T) {
		r := NewReservation("   ", date)
		assert.ErrorIs(t, r.Validate(), ErrNameRequired)
	})

	t.Run("日付が未設定の場合はエラー", func(t *testing.T) {
		r := NewReservation("Alice", Date{})
		assert.ErrorIs(t, r.Validate(), ErrDateRequired)
	})
}

func TestReservation_MatchesName(t *testing.T) {
	anna := NewReservation("Anna", Date{Year: 2025, Month: time.June, Day: 10})
	joanne := NewReservation("JoAnne", Date{Year: 2025, Month: time.June, Day: 11})

	t.Run("大文字小文字を無視した部分一致", func(t *testing.T) {
		assert.True(t, anna.MatchesName("ann"))
		assert.True(t, joanne.MatchesName("ann"))
		assert.True(t, anna.MatchesName("ANNA"))
	})

	t.Run("一致しない名前", func(t *testing.T) {
		assert.False(t, anna.MatchesName("bob"))
	})

	t.Run("空文字列には一致しない", func(t *testing.T) {
		assert.False(t, anna.MatchesName(""))
	})
}
