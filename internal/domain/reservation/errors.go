package reservation

import "errors"

// Reservation ドメインのエラー定義
// メッセージはそのまま API レスポンスの error フィールドになる
var (
	ErrNotFound     = errors.New("Reservation not found")
	ErrDateConflict = errors.New("Date already reserved")
	ErrPastDate     = errors.New("Reservation date cannot be in the past.")
	ErrNameRequired = errors.New("Name is required")
	ErrDateRequired = errors.New("Date is required")
	ErrInvalidDate  = errors.New("Invalid date format. Use YYYY-MM-DD.")
)
