package handler

import (
	"context"

	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
)

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, name, date string) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, date string) error
	EditReservation(ctx context.Context, date, newName, newDate string) (*reservation.Reservation, error)
	SearchByName(ctx context.Context, query string) (reservation.Listing, error)
	ListAll(ctx context.Context) (reservation.Listing, error)
}
