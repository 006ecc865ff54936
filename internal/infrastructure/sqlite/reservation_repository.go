// Package sqlite は単一ノード向けの組み込み予約ストア
// PostgreSQLを立てずに動かす配備で使う
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
)

//go:embed schema.sql
var schemaSQL string

type reservationRow struct {
	ID        string    `db:"id"`
	Date      string    `db:"reserved_on"`
	Name      string    `db:"guest_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ReservationRepository はSQLiteファイル上の reservation.Repository 実装
// 日付はTEXT(YYYY-MM-DD)で保存し、UNIQUE制約で一意性を担保する
type ReservationRepository struct{ db *sqlx.DB }

// Open はSQLiteデータベースを開き、スキーマを適用してリポジトリを返す
func Open(path string) (*ReservationRepository, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("SQLiteオープンに失敗: %w", err)
	}
	// 書き込みを直列化して check-and-write を原子的に保つ
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("スキーマ適用に失敗: %w", err)
	}
	return &ReservationRepository{db: db}, nil
}

// Close はデータベースを閉じる
func (r *ReservationRepository) Close() error {
	return r.db.Close()
}

func (r *ReservationRepository) List(ctx context.Context) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT id, reserved_on, guest_name, created_at, updated_at FROM reservations ORDER BY reserved_on ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toEntities(rows)
}

func (r *ReservationRepository) GetByDate(ctx context.Context, date reservation.Date) (*reservation.Reservation, error) {
	var row reservationRow
	query := `SELECT id, reserved_on, guest_name, created_at, updated_at FROM reservations WHERE reserved_on = ?`
	if err := r.db.GetContext(ctx, &row, query, date.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return toEntity(&row)
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	query := `INSERT INTO reservations (id, reserved_on, guest_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, res.ID, res.Date.String(), res.Name, res.CreatedAt, res.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return reservation.ErrDateConflict
		}
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *ReservationRepository) Remove(ctx context.Context, date reservation.Date) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE reserved_on = ?`, date.String())
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
	// 移動先が使用中ならUNIQUE制約違反で失敗し、元のレコードは変更されない
	query := `UPDATE reservations SET guest_name = ?, reserved_on = ?, updated_at = ? WHERE reserved_on = ?`
	result, err := r.db.ExecContext(ctx, query, strings.TrimSpace(newName), newDate.String(), time.Now(), oldDate.String())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, reservation.ErrDateConflict
		}
		return nil, fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, reservation.ErrNotFound
	}
	return r.GetByDate(ctx, newDate)
}

func (r *ReservationRepository) SearchByName(ctx context.Context, substring string) ([]*reservation.Reservation, error) {
	if substring == "" {
		return nil, nil
	}
	// SQLiteのLIKEはASCIIに限り大文字小文字を区別しない
	var rows []reservationRow
	query := `SELECT id, reserved_on, guest_name, created_at, updated_at FROM reservations
		WHERE guest_name LIKE '%' || ? || '%' ESCAPE '\' ORDER BY reserved_on ASC`
	if err := r.db.SelectContext(ctx, &rows, query, escapeLike(substring)); err != nil {
		return nil, fmt.Errorf("予約検索に失敗: %w", err)
	}
	return toEntities(rows)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func toEntity(row *reservationRow) (*reservation.Reservation, error) {
	date, err := reservation.ParseDate(row.Date)
	if err != nil {
		return nil, fmt.Errorf("保存済み日付が不正です %q: %w", row.Date, err)
	}
	return &reservation.Reservation{
		ID:        row.ID,
		Date:      date,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func toEntities(rows []reservationRow) ([]*reservation.Reservation, error) {
	result := make([]*reservation.Reservation, len(rows))
	for i := range rows {
		entity, err := toEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		result[i] = entity
	}
	return result, nil
}

var _ reservation.Repository = (*ReservationRepository)(nil)
