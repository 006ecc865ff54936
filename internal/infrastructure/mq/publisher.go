package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Abdullah-1719/ChaletF/internal/config"
)

// Publisher は予約イベントをfanoutエクスチェンジに発行する
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher はRabbitMQに接続してPublisherを作成する
func NewPublisher(cfg *config.AMQPConfig) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("RabbitMQ接続に失敗しました: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("チャネル作成に失敗しました: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("エクスチェンジ宣言に失敗しました: %w", err)
	}

	return &Publisher{conn: conn, channel: ch, exchange: cfg.Exchange}, nil
}

// Publish は予約イベントを発行する
func (p *Publisher) Publish(ctx context.Context, eventType EventType, date, name string) error {
	event := BookingEvent{
		Type:       eventType,
		Date:       date,
		Name:       name,
		OccurredAt: time.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("イベントのエンコードに失敗: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("イベント発行に失敗: %w", err)
	}
	return nil
}

// Close はチャネルと接続を閉じる
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
