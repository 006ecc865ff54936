package reservation

import "context"

// Repository は予約ストレージのインターフェース
// 実装は postgres / sqlite / memory の3種類
type Repository interface {
	// List は全予約を日付昇順で返す
	List(ctx context.Context) ([]*Reservation, error)

	// GetByDate は指定日の予約を取得する
	// 存在しない場合は ErrNotFound を返す
	GetByDate(ctx context.Context, date Date) (*Reservation, error)

	// Insert は新しい予約を保存する
	// 日付の重複チェックと書き込みは単一の原子的操作で行うこと
	// 既に予約がある日付の場合は ErrDateConflict を返す
	Insert(ctx context.Context, r *Reservation) error

	// Remove は指定日の予約を削除する
	// 存在しない場合は ErrNotFound を返す
	Remove(ctx context.Context, date Date) error

	// Update は oldDate の予約の名前と日付を差し替える
	// 全か無かの操作であり、失敗時に元のレコードは変更されない
	// oldDate が存在しなければ ErrNotFound、
	// 移動先の newDate が使用中なら ErrDateConflict を返す
	Update(ctx context.Context, oldDate Date, newName string, newDate Date) (*Reservation, error)

	// SearchByName は名前の部分一致検索を行う（大文字小文字無視）
	// 空文字列には何も一致しない
	SearchByName(ctx context.Context, substring string) ([]*Reservation, error)
}
