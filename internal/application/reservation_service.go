package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
	"github.com/Abdullah-1719/ChaletF/internal/infrastructure/mq"
	"github.com/Abdullah-1719/ChaletF/internal/pkg/logger"
	"github.com/Abdullah-1719/ChaletF/internal/pkg/metrics"
)

// SnapshotCache は予約一覧キャッシュのインターフェース
type SnapshotCache interface {
	GetListing(ctx context.Context) (reservation.Listing, error)
	SetListing(ctx context.Context, listing reservation.Listing) error
	Invalidate(ctx context.Context) error
}

// EventPublisher は予約イベント発行のインターフェース
type EventPublisher interface {
	Publish(ctx context.Context, eventType mq.EventType, date, name string) error
}

// ReservationService は予約操作のリクエストレベル検証とオーケストレーションを行う
// cache / publisher / m は nil でもよく、その場合は単に何もしない
type ReservationService struct {
	repo      reservation.Repository
	cache     SnapshotCache
	publisher EventPublisher
	m         *metrics.Metrics

	// now はサーバー側の現在日時（テストで差し替える）
	now func() time.Time
}

// NewReservationService は新しいReservationServiceを作成する
func NewReservationService(repo reservation.Repository, cache SnapshotCache, publisher EventPublisher, m *metrics.Metrics) *ReservationService {
	return &ReservationService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		m:         m,
		now:       time.Now,
	}
}

// CreateReservation は新しい予約を作成する
// 過去日付の判定はサーバーの現在日を日単位に丸めて行う
func (s *ReservationService) CreateReservation(ctx context.Context, name, dateStr string) (*reservation.Reservation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, s.record("create", reservation.ErrNameRequired)
	}
	if dateStr == "" {
		return nil, s.record("create", reservation.ErrDateRequired)
	}
	date, err := reservation.ParseDate(dateStr)
	if err != nil {
		return nil, s.record("create", err)
	}
	if date.Before(reservation.DateOf(s.now())) {
		return nil, s.record("create", reservation.ErrPastDate)
	}

	res := reservation.NewReservation(name, date)
	if err := s.repo.Insert(ctx, res); err != nil {
		return nil, s.record("create", err)
	}

	s.afterMutation(ctx, mq.EventReservationCreated, res.Date.String(), res.Name)
	s.record("create", nil)
	return res, nil
}

// CancelReservation は指定日の予約を削除する
func (s *ReservationService) CancelReservation(ctx context.Context, dateStr string) error {
	date, err := reservation.ParseDate(dateStr)
	if err != nil {
		// 存在し得ないキーなので NotFound として扱う
		return s.record("cancel", reservation.ErrNotFound)
	}
	if err := s.repo.Remove(ctx, date); err != nil {
		return s.record("cancel", err)
	}

	s.afterMutation(ctx, mq.EventReservationCancelled, date.String(), "")
	s.record("cancel", nil)
	return nil
}

// EditReservation は既存予約の名前と日付を差し替える
// 日付を移動する場合、移動先にも過去日付と重複の制約がかかる
func (s *ReservationService) EditReservation(ctx context.Context, dateStr, newName, newDateStr string) (*reservation.Reservation, error) {
	oldDate, err := reservation.ParseDate(dateStr)
	if err != nil {
		return nil, s.record("edit", reservation.ErrNotFound)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, s.record("edit", reservation.ErrNameRequired)
	}
	if newDateStr == "" {
		return nil, s.record("edit", reservation.ErrDateRequired)
	}
	newDate, err := reservation.ParseDate(newDateStr)
	if err != nil {
		return nil, s.record("edit", err)
	}
	if newDate != oldDate && newDate.Before(reservation.DateOf(s.now())) {
		return nil, s.record("edit", reservation.ErrPastDate)
	}

	updated, err := s.repo.Update(ctx, oldDate, newName, newDate)
	if err != nil {
		return nil, s.record("edit", err)
	}

	s.afterMutation(ctx, mq.EventReservationUpdated, updated.Date.String(), updated.Name)
	s.record("edit", nil)
	return updated, nil
}

// SearchByName は名前の部分一致で予約を検索する
// クエリは前後の空白を除去し、空になった場合は空の結果を返す
func (s *ReservationService) SearchByName(ctx context.Context, query string) (reservation.Listing, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return reservation.Listing{}, nil
	}
	found, err := s.repo.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}
	return reservation.NewListing(found), nil
}

// ListAll は全予約を日付キーのマッピングで返す
// スナップショットキャッシュがあればそちらを優先する
func (s *ReservationService) ListAll(ctx context.Context) (reservation.Listing, error) {
	if s.cache != nil {
		listing, err := s.cache.GetListing(ctx)
		if err == nil {
			s.cacheLookup("hit")
			return listing, nil
		}
		s.cacheLookup("miss")
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	listing := reservation.NewListing(all)

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, listing); err != nil {
			logger.Warn("スナップショットキャッシュの保存に失敗", zap.Error(err))
		}
	}
	return listing, nil
}

// RefreshSnapshot はキャッシュを温め直し、今日以降の予約数を返す
// バックグラウンドワーカーから定期的に呼ばれる
func (s *ReservationService) RefreshSnapshot(ctx context.Context) (int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, reservation.NewListing(all)); err != nil {
			logger.Warn("スナップショットキャッシュの更新に失敗", zap.Error(err))
		}
	}

	today := reservation.DateOf(s.now())
	upcoming := 0
	for _, r := range all {
		if !r.Date.Before(today) {
			upcoming++
		}
	}
	if s.m != nil {
		s.m.UpcomingReservations.Set(float64(upcoming))
	}
	return upcoming, nil
}

// afterMutation は変更成功後のキャッシュ無効化とイベント発行を行う
// どちらも失敗してもリクエスト自体は成功扱いとする
func (s *ReservationService) afterMutation(ctx context.Context, eventType mq.EventType, date, name string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Warn("スナップショットキャッシュの無効化に失敗", zap.Error(err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, eventType, date, name); err != nil {
			logger.Warn("予約イベントの発行に失敗",
				zap.String("event", string(eventType)),
				zap.String("date", date),
				zap.Error(err),
			)
		}
	}
}

// record は操作の結果をメトリクスに記録し、エラーをそのまま返す
func (s *ReservationService) record(operation string, err error) error {
	if s.m == nil {
		return err
	}
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, reservation.ErrDateConflict):
		status = "conflict"
	case errors.Is(err, reservation.ErrNotFound):
		status = "not_found"
	case errors.Is(err, reservation.ErrPastDate),
		errors.Is(err, reservation.ErrNameRequired),
		errors.Is(err, reservation.ErrDateRequired),
		errors.Is(err, reservation.ErrInvalidDate):
		status = "invalid"
	default:
		status = "error"
	}
	s.m.BookingsTotal.WithLabelValues(operation, status).Inc()
	return err
}

func (s *ReservationService) cacheLookup(result string) {
	if s.m != nil {
		s.m.SnapshotCacheLookups.WithLabelValues(result).Inc()
	}
}
