// Package mq は予約の変更をRabbitMQに通知する
// 清掃スタッフ向けの下流システムが購読する想定
package mq

import "time"

// EventType は予約イベントの種類
type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationUpdated   EventType = "reservation.updated"
	EventReservationCancelled EventType = "reservation.cancelled"
)

// BookingEvent は発行されるイベントのペイロード
type BookingEvent struct {
	Type       EventType `json:"type"`
	Date       string    `json:"date"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
