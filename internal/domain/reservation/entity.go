package reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reservation は1日分の予約を表すエンティティ
// Date が自然キーであり、同じ日付の予約は同時に1件しか存在できない
type Reservation struct {
	ID        string
	Date      Date
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReservation は新しい予約を作成する
func NewReservation(name string, date Date) *Reservation {
	now := time.Now()
	return &Reservation{
		ID:        uuid.NewString(),
		Date:      date,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate は予約の検証を行う
func (r *Reservation) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if r.Date.IsZero() {
		return ErrDateRequired
	}
	return nil
}

// MatchesName は名前の大文字小文字を無視した部分一致判定を行う
// 空の substring には一致しない
func (r *Reservation) MatchesName(substring string) bool {
	if substring == "" {
		return false
	}
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(substring))
}
