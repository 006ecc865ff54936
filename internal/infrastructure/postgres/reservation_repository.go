package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
)

// uniqueViolation はPostgreSQLの一意制約違反コード
const uniqueViolation = "23505"

type reservationRow struct {
	ID        string    `db:"id"`
	Date      time.Time `db:"reserved_on"`
	Name      string    `db:"guest_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ReservationRepository は reservations テーブルを操作するリポジトリ
// 日付の一意性は reserved_on のUNIQUE制約で担保する
type ReservationRepository struct{ db *sqlx.DB }

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) List(ctx context.Context) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT id, reserved_on, guest_name, created_at, updated_at FROM reservations ORDER BY reserved_on ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toEntities(rows), nil
}

func (r *ReservationRepository) GetByDate(ctx context.Context, date reservation.Date) (*reservation.Reservation, error) {
	var row reservationRow
	query := `SELECT id, reserved_on, guest_name, created_at, updated_at FROM reservations WHERE reserved_on = $1`
	if err := r.db.GetContext(ctx, &row, query, date.Time()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return toEntity(&row), nil
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	query := `INSERT INTO reservations (id, reserved_on, guest_name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, res.ID, res.Date.Time(), res.Name, res.CreatedAt, res.UpdatedAt); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && string(pgErr.Code) == uniqueViolation {
			return reservation.ErrDateConflict
		}
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *ReservationRepository) Remove(ctx context.Context, date reservation.Date) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE reserved_on = $1`, date.Time())
	if err != nil {
		return fmt.Errorf("予約削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return reservation.ErrNotFound
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, oldDate reservation.Date, newName string, newDate reservation.Date) (*reservation.Reservation, error) {
	// 単一のUPDATE文で差し替える
	// 移動先が使用中の場合はUNIQUE制約違反となり、元のレコードは変更されない
	var row reservationRow
	query := `UPDATE reservations SET guest_name = $1, reserved_on = $2, updated_at = $3 WHERE reserved_on = $4
		RETURNING id, reserved_on, guest_name, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query, strings.TrimSpace(newName), newDate.Time(), time.Now(), oldDate.Time()).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrNotFound
		}
		if pgErr, ok := err.(*pq.Error); ok && string(pgErr.Code) == uniqueViolation {
			return nil, reservation.ErrDateConflict
		}
		return nil, fmt.Errorf("予約更新に失敗: %w", err)
	}
	return toEntity(&row), nil
}

func (r *ReservationRepository) SearchByName(ctx context.Context, substring string) ([]*reservation.Reservation, error) {
	if substring == "" {
		return nil, nil
	}
	var rows []reservationRow
	query := `SELECT id, reserved_on, guest_name, created_at, updated_at FROM reservations
		WHERE guest_name ILIKE '%' || $1 || '%' ORDER BY reserved_on ASC`
	if err := r.db.SelectContext(ctx, &rows, query, escapeLike(substring)); err != nil {
		return nil, fmt.Errorf("予約検索に失敗: %w", err)
	}
	return toEntities(rows), nil
}

// escapeLike はLIKEパターンのメタ文字をリテラルとして扱えるようにする
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func toEntity(row *reservationRow) *reservation.Reservation {
	return &reservation.Reservation{
		ID:        row.ID,
		Date:      reservation.DateOf(row.Date),
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func toEntities(rows []reservationRow) []*reservation.Reservation {
	result := make([]*reservation.Reservation, len(rows))
	for i := range rows {
		result[i] = toEntity(&rows[i])
	}
	return result
}

var _ reservation.Repository = (*ReservationRepository)(nil)
