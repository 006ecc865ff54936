package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

const snapshotKey = "reservations:snapshot"

// SnapshotCache は予約一覧のスナップショットをキャッシュする
// 一覧取得が毎回ストアに当たらないようにするための read-through キャッシュ
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache は新しいSnapshotCacheインスタンスを作成する
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// GetListing はキャッシュ済みの一覧マッピングを取得する
func (c *SnapshotCache) GetListing(ctx context.Context) (reservation.Listing, error) {
	val, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var listing reservation.Listing
	if err := json.Unmarshal(val, &listing); err != nil {
		return nil, fmt.Errorf("キャッシュのデコードに失敗: %w", err)
	}
	return listing, nil
}

// SetListing は一覧マッピングをキャッシュに保存する
func (c *SnapshotCache) SetListing(ctx context.Context, listing reservation.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("キャッシュのエンコードに失敗: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はスナップショットを無効化する
// 予約の作成・更新・削除の後に必ず呼ぶ
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}
