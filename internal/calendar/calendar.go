// Package calendar は予約一覧から月間カレンダーのグリッドを組み立てる
// 純粋関数のみで、ストアにもHTTPにも依存しない
package calendar

import (
	"time"

	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
)

// Cell はカレンダー上の1日分のセル
type Cell struct {
	Day  int    `json:"day"`
	Date string `json:"date"`

	// Booked / Past / Available は排他、Today は独立したフラグ
	Booked    bool   `json:"booked"`
	GuestName string `json:"guest_name,omitempty"`
	Past      bool   `json:"past"`
	Available bool   `json:"available"`
	Today     bool   `json:"today"`

	// Clickable は予約フォームの日付プリフィルに使えるセルかどうか
	Clickable bool `json:"clickable"`
}

// Month は1か月分のグリッド
type Month struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`

	// LeadingBlanks は1日より前に置く空セルの数（月初の曜日、0=日曜）
	LeadingBlanks int    `json:"leading_blanks"`
	Weekdays      []string `json:"weekdays"`
	Cells         []Cell `json:"cells"`
}

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Render は指定した年月のグリッドを組み立てる
// reservations は日付キーの一覧マッピング、today は判定基準日
func Render(year int, month time.Month, reservations reservation.Listing, today reservation.Date) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	// 翌月の0日目 = 当月の末日
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	grid := Month{
		Year:          year,
		Month:         int(month),
		MonthName:     month.String(),
		LeadingBlanks: int(first.Weekday()),
		Weekdays:      weekdays,
		Cells:         make([]Cell, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := reservation.Date{Year: year, Month: month, Day: day}
		cell := Cell{
			Day:   day,
			Date:  date.String(),
			Today: date == today,
		}

		if entry, ok := reservations[cell.Date]; ok {
			cell.Booked = true
			cell.GuestName = entry.Name
		} else if date.Before(today) {
			cell.Past = true
		} else {
			cell.Available = true
			cell.Clickable = true
		}

		grid.Cells = append(grid.Cells, cell)
	}
	return grid
}

// Previous は1か月前の(年, 月)を返す（1月→前年12月）
func Previous(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Next は1か月後の(年, 月)を返す（12月→翌年1月）
func Next(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// ThisMonth はtの属する(年, 月)を返す
func ThisMonth(t time.Time) (int, time.Month) {
	return t.Year(), t.Month()
}
