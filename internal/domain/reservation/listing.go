package reservation

// ListingEntry は一覧マッピングの値部分
type ListingEntry struct {
	Name string `json:"name"`
}

// Listing は日付(YYYY-MM-DD)をキーとした予約の一覧マッピング
// APIレスポンスとカレンダー描画の入力にそのまま使う
type Listing map[string]ListingEntry

// NewListing は予約のスライスから一覧マッピングを作成する
func NewListing(reservations []*Reservation) Listing {
	listing := make(Listing, len(reservations))
	for _, r := range reservations {
		listing[r.Date.String()] = ListingEntry{Name: r.Name}
	}
	return listing
}
