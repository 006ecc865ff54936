// Package memory はテストと使い捨て実行用のインメモリ予約ストア
// インスタンスごとに独立した状態を持つため、テスト間の分離が保てる
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
)

// ReservationRepository はマップベースの reservation.Repository 実装
// 全操作をミューテックスで直列化するので重複チェックと書き込みは原子的
type ReservationRepository struct {
	mu           sync.Mutex
	reservations map[reservation.Date]*reservation.Reservation
}

// NewReservationRepository は空のインメモリリポジトリを作成する
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		reservations: make(map[reservation.Date]*reservation.Reservation),
	}
}

func (r *ReservationRepository) List(ctx context.Context) ([]*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*reservation.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		result = append(result, copyReservation(res))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (r *ReservationRepository) GetByDate(ctx context.Context, date reservation.Date) (*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[date]
	if !ok {
		return nil, reservation.ErrNotFound
	}
	return copyReservation(res), nil
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservations[res.Date]; ok {
		return reservation.ErrDateConflict
	}
	r.reservations[res.Date] = copyReservation(res)
	return nil
}

func (r *ReservationRepository) Remove(ctx context.Context, date reservation.Date) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservations[date]; !ok {
		return reservation.ErrNotFound
	}
	delete(r.reservations, date)
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, oldDate reservation.Date, newName string, newDate reservation.Date) (*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.reservations[oldDate]
	if !ok {
		return nil, reservation.ErrNotFound
	}
	if newDate != oldDate {
		if _, occupied := r.reservations[newDate]; occupied {
			return nil, reservation.ErrDateConflict
		}
	}

	updated := copyReservation(existing)
	updated.Name = strings.TrimSpace(newName)
	updated.Date = newDate
	updated.UpdatedAt = time.Now()

	delete(r.reservations, oldDate)
	r.reservations[newDate] = updated
	return copyReservation(updated), nil
}

func (r *ReservationRepository) SearchByName(ctx context.Context, substring string) ([]*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*reservation.Reservation
	for _, res := range r.reservations {
		if res.MatchesName(substring) {
			result = append(result, copyReservation(res))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// copyReservation は呼び出し側にストア内部の構造体を共有させないための複製
func copyReservation(r *reservation.Reservation) *reservation.Reservation {
	c := *r
	return &c
}

var _ reservation.Repository = (*ReservationRepository)(nil)
