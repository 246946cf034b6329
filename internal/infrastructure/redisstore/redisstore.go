package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyOrderWatermark clave de la marca del vigilante de pedidos.
const KeyOrderWatermark = "ledger:orders:watermark"

// Watermark guarda un instante en una clave de Redis (RFC3339Nano, UTC).
type Watermark struct {
	client *redis.Client
	key    string
}

func NewWatermark(client *redis.Client, key string) *Watermark {
	if key == "" {
		key = KeyOrderWatermark
	}
	return &Watermark{client: client, key: key}
}

// Get devuelve la marca guardada; ok=false si la clave no existe.
func (w *Watermark) Get(ctx context.Context) (time.Time, bool, error) {
	raw, err := w.client.Get(ctx, w.key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func (w *Watermark) Set(ctx context.Context, t time.Time) error {
	return w.client.Set(ctx, w.key, t.UTC().Format(time.RFC3339Nano), 0).Err()
}

// Publisher publica mensajes por pub/sub.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// NewClient abre un cliente y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
