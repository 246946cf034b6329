package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/rs/zerolog"
)

// ChannelNewOrders canal donde se publican los pedidos nuevos.
const ChannelNewOrders = "orders.new"

const defaultBatch = 200

// OrderFeed fuente de pedidos por fecha de creación. repository.OrderRepository la satisface.
type OrderFeed interface {
	ListCreatedAfter(ctx context.Context, since time.Time, limit int) ([]*entity.Order, error)
}

// Watermark guarda la fecha de creación del último pedido notificado.
type Watermark interface {
	Get(ctx context.Context) (time.Time, bool, error)
	Set(ctx context.Context, t time.Time) error
}

// Publisher publica un mensaje en un canal.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NewOrdersMessage cuerpo publicado en ChannelNewOrders.
type NewOrdersMessage struct {
	Count    int       `json:"count"`
	OrderIDs []string  `json:"order_ids"`
	Until    time.Time `json:"until"`
}

// Result resumen de una revisión.
type Result struct {
	Notified int
	Until    time.Time
}

// OrderWatcher detecta pedidos creados desde la última revisión y los anuncia.
type OrderWatcher struct {
	orders    OrderFeed
	watermark Watermark
	pub       Publisher
	batch     int
	now       func() time.Time
	log       zerolog.Logger
}

func NewOrderWatcher(orders OrderFeed, watermark Watermark, pub Publisher, log zerolog.Logger) *OrderWatcher {
	return &OrderWatcher{
		orders:    orders,
		watermark: watermark,
		pub:       pub,
		batch:     defaultBatch,
		now:       time.Now,
		log:       log.With().Str("component", "order_watcher").Logger(),
	}
}

// Check revisa pedidos nuevos. La primera vez sólo fija la marca en el instante actual,
// así los pedidos históricos no se anuncian. La marca avanza después de publicar:
// si la publicación falla, la siguiente revisión vuelve a intentar el mismo lote.
func (w *OrderWatcher) Check(ctx context.Context) (Result, error) {
	since, ok, err := w.watermark.Get(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("leer marca: %w", err)
	}
	if !ok {
		now := w.now().UTC()
		if err := w.watermark.Set(ctx, now); err != nil {
			return Result{}, fmt.Errorf("inicializar marca: %w", err)
		}
		w.log.Info().Time("since", now).Msg("marca de pedidos inicializada")
		return Result{Until: now}, nil
	}

	orders, err := w.orders.ListCreatedAfter(ctx, since, w.batch)
	if err != nil {
		return Result{}, fmt.Errorf("listar pedidos: %w", err)
	}
	if len(orders) == 0 {
		return Result{Until: since}, nil
	}

	msg := NewOrdersMessage{Count: len(orders), OrderIDs: make([]string, 0, len(orders))}
	for _, o := range orders {
		msg.OrderIDs = append(msg.OrderIDs, o.ID)
		if o.CreatedAt.After(msg.Until) {
			msg.Until = o.CreatedAt
		}
	}
	msg.Until = msg.Until.UTC()
	payload, err := json.Marshal(msg)
	if err != nil {
		return Result{}, err
	}
	if err := w.pub.Publish(ctx, ChannelNewOrders, payload); err != nil {
		return Result{}, fmt.Errorf("publicar pedidos nuevos: %w", err)
	}
	if err := w.watermark.Set(ctx, msg.Until); err != nil {
		return Result{}, fmt.Errorf("avanzar marca: %w", err)
	}
	w.log.Info().Int("count", msg.Count).Time("until", msg.Until).Msg("pedidos nuevos notificados")
	return Result{Notified: msg.Count, Until: msg.Until}, nil
}
