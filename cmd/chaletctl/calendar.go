package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Abdullah-1719/ChaletF/internal/calendar"
)

var (
	calYear  int
	calMonth int
	calPrev  bool
	calNext  bool
	calToday bool
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the monthly reservation calendar",
	Long: `Show the reservation calendar for a month. Without flags the
current month is shown. Use --prev / --next to step one month
from the requested month.`,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().IntVar(&calYear, "year", 0, "year (default: current)")
	calendarCmd.Flags().IntVar(&calMonth, "month", 0, "month 1-12 (default: current)")
	calendarCmd.Flags().BoolVar(&calPrev, "prev", false, "show the previous month")
	calendarCmd.Flags().BoolVar(&calNext, "next", false, "show the next month")
	calendarCmd.Flags().BoolVar(&calToday, "today", false, "jump back to the current month")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	year, month := calYear, calMonth
	if year == 0 {
		year = time.Now().Year()
	}
	if month == 0 {
		month = int(time.Now().Month())
	}

	// --prev / --next は基準月から1か月ずらし、--today は現在月に戻す
	if calPrev && calNext {
		return fmt.Errorf("--prev and --next are mutually exclusive")
	}
	if calPrev {
		y, m := calendar.Previous(year, time.Month(month))
		year, month = y, int(m)
	}
	if calNext {
		y, m := calendar.Next(year, time.Month(month))
		year, month = y, int(m)
	}
	if calToday {
		y, m := calendar.ThisMonth(time.Now())
		year, month = y, int(m)
	}

	grid, err := client.Calendar(cmd.Context(), year, month)
	if err != nil {
		return err
	}

	printCalendar(cmd, grid)
	return nil
}

// printCalendar はグリッドを端末用に整形して出力する
// 予約済みは[n]、過去は括弧、今日は*付きで表示する
func printCalendar(cmd *cobra.Command, grid *calendar.Month) {
	cmd.Printf("%s %d\n", grid.MonthName, grid.Year)

	for _, wd := range grid.Weekdays {
		cmd.Printf("%5s", wd)
	}
	cmd.Println()

	col := grid.LeadingBlanks
	cmd.Print(strings.Repeat("     ", col))

	booked := make([]calendar.Cell, 0)
	for _, cell := range grid.Cells {
		cmd.Printf("%5s", formatCell(cell))
		if cell.Booked {
			booked = append(booked, cell)
		}
		col++
		if col == 7 {
			cmd.Println()
			col = 0
		}
	}
	if col != 0 {
		cmd.Println()
	}

	if len(booked) > 0 {
		sort.Slice(booked, func(i, j int) bool { return booked[i].Date < booked[j].Date })
		cmd.Println()
		for _, cell := range booked {
			cmd.Printf("  %s  %s\n", cell.Date, cell.GuestName)
		}
	}
}

func formatCell(cell calendar.Cell) string {
	switch {
	case cell.Today && cell.Booked:
		return fmt.Sprintf("*[%d]", cell.Day)
	case cell.Booked:
		return fmt.Sprintf("[%d]", cell.Day)
	case cell.Today:
		return fmt.Sprintf("*%d", cell.Day)
	case cell.Past:
		return fmt.Sprintf("(%d)", cell.Day)
	default:
		return fmt.Sprintf("%d", cell.Day)
	}
}
