package reservation

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout は予約日の外部表現フォーマット
const DateLayout = "2006-01-02"

// Date はカレンダー上の1日を表す値型
// 時刻成分を持たず、比較可能なのでマップのキーとして使える
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate は YYYY-MM-DD 形式の文字列から Date を作成する
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf は time.Time から時刻成分を落とした Date を作成する
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String は YYYY-MM-DD 形式の文字列を返す
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time は Date を UTC 0時の time.Time に変換する
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero は未設定の Date かを返す
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before は d が other より前の日かを返す
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// AddDays は d から日数を加算した Date を返す
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// MarshalJSON は Date を YYYY-MM-DD 文字列として出力する
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON は YYYY-MM-DD 文字列から Date を復元する
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
