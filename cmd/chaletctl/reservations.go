package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	bookName string
	bookDate string

	searchName string

	editName string
	editDate string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all reservations",
	RunE: func(cmd *cobra.Command, args []string) error {
		listing, err := client.List(cmd.Context())
		if err != nil {
			return err
		}
		printListing(cmd, listing)
		return nil
	},
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a date",
	Long:  `Book a date for a guest. Dates use the YYYY-MM-DD format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.Book(cmd.Context(), bookName, bookDate)
		if err != nil {
			return err
		}
		cmd.Printf("Booked %s for %s\n\n", res.Date, res.Name)
		return showMonthOf(cmd, res.Date)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search reservations by guest name",
	Long:  `Search reservations whose guest name contains the given text (case-insensitive).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		listing, err := client.Search(cmd.Context(), searchName)
		if err != nil {
			return err
		}
		if len(listing) == 0 {
			cmd.Println("No reservations found")
			return nil
		}
		printListing(cmd, listing)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <date>",
	Short: "Change the name or date of a reservation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.Edit(cmd.Context(), args[0], editName, editDate)
		if err != nil {
			return err
		}
		cmd.Printf("Updated: %s is now booked for %s\n\n", res.Date, res.Name)
		return showMonthOf(cmd, res.Date)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <date>",
	Short: "Cancel the reservation on a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.Cancel(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("Cancelled reservation on %s\n\n", args[0])
		return showMonthOf(cmd, args[0])
	},
}

func init() {
	bookCmd.Flags().StringVar(&bookName, "name", "", "guest name (required)")
	bookCmd.Flags().StringVar(&bookDate, "date", "", "date YYYY-MM-DD (required)")
	_ = bookCmd.MarkFlagRequired("name")
	_ = bookCmd.MarkFlagRequired("date")

	searchCmd.Flags().StringVar(&searchName, "name", "", "name fragment to search for (required)")
	_ = searchCmd.MarkFlagRequired("name")

	editCmd.Flags().StringVar(&editName, "name", "", "new guest name (required)")
	editCmd.Flags().StringVar(&editDate, "date", "", "new date YYYY-MM-DD (required)")
	_ = editCmd.MarkFlagRequired("name")
	_ = editCmd.MarkFlagRequired("date")
}

// showMonthOf は変更後の状態を見せるため、対象日の月カレンダーを取り直して表示する
func showMonthOf(cmd *cobra.Command, date string) error {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return nil
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}

	grid, err := client.Calendar(cmd.Context(), year, month)
	if err != nil {
		return err
	}
	printCalendar(cmd, grid)
	return nil
}

// printListing は日付順に予約を出力する
func printListing(cmd *cobra.Command, listing Listing) {
	dates := make([]string, 0, len(listing))
	for date := range listing {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", date, listing[date].Name)
	}
}
