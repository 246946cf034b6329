package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jhoicas/bentonit-ledger/internal/application/notify"
	"github.com/rs/zerolog"
)

const (
	// QueueDefault cola por defecto de los trabajos.
	QueueDefault = "default"
	// TaskCheckNewOrders revisa pedidos creados desde la última revisión.
	TaskCheckNewOrders = "orders:check_new"
)

// CheckNewOrdersPayload datos de la tarea; Source sólo se usa en logs.
type CheckNewOrdersPayload struct {
	Source string `json:"source"`
}

// NewCheckNewOrdersTask arma la tarea periódica de pedidos nuevos.
func NewCheckNewOrdersTask(payload CheckNewOrdersPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCheckNewOrders, data, asynq.Queue(QueueDefault), asynq.MaxRetry(0)), nil
}

// OrderChecker ejecuta una revisión de pedidos nuevos.
type OrderChecker interface {
	Check(ctx context.Context) (notify.Result, error)
}

// RunObserver recibe el resultado de cada ejecución.
type RunObserver interface {
	ObserveRun(job string, err error, elapsed time.Duration)
	AddNotifiedOrders(n int)
}

// CheckNewOrdersHandler procesa TaskCheckNewOrders.
type CheckNewOrdersHandler struct {
	checker OrderChecker
	obs     RunObserver
	log     zerolog.Logger
}

func NewCheckNewOrdersHandler(checker OrderChecker, obs RunObserver, log zerolog.Logger) *CheckNewOrdersHandler {
	return &CheckNewOrdersHandler{checker: checker, obs: obs, log: log}
}

// ProcessTask implementa asynq.Handler.
func (h *CheckNewOrdersHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload CheckNewOrdersPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("payload inválido: %w", asynq.SkipRetry)
		}
	}
	start := time.Now()
	res, err := h.checker.Check(ctx)
	if h.obs != nil {
		h.obs.ObserveRun(TaskCheckNewOrders, err, time.Since(start))
		h.obs.AddNotifiedOrders(res.Notified)
	}
	if err != nil {
		h.log.Error().Err(err).Str("source", payload.Source).Msg("revisión de pedidos fallida")
		return err
	}
	return nil
}
