package notify

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/pkg/logger"
)

// subscriberBuffer tamaño del canal por suscriptor; si se llena, las
// notificaciones nuevas se descartan para ese suscriptor.
const subscriberBuffer = 16

// Subscriber es un observador registrado en el Hub. Recibe por su canal
// hasta que se desuscribe (el Hub cierra el canal al desuscribir).
type Subscriber struct {
	id string
	ch chan *entity.LowStockNotification
}

// Ch devuelve el canal de recepción del suscriptor.
func (s *Subscriber) Ch() <-chan *entity.LowStockNotification {
	return s.ch
}

// Hub es el registro explícito de suscriptores de notificaciones:
// conectar y desconectar son eventos de ciclo de vida explícitos, sin
// estado ambiental del framework.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]*Subscriber
	log  *logger.Logger
}

// NewHub construye un hub sin suscriptores.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{subs: make(map[string]*Subscriber), log: log}
}

// Subscribe registra un nuevo suscriptor y devuelve su handle.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		id: uuid.New().String(),
		ch: make(chan *entity.LowStockNotification, subscriberBuffer),
	}
	h.mu.Lock()
	h.subs[sub.id] = sub
	h.mu.Unlock()
	h.log.Debug().Str("subscriber", sub.id).Msg("suscriptor conectado")
	return sub
}

// Unsubscribe retira el suscriptor y cierra su canal. Idempotente.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub.id]; ok {
		delete(h.subs, sub.id)
		close(sub.ch)
	}
	h.mu.Unlock()
	h.log.Debug().Str("subscriber", sub.id).Msg("suscriptor desconectado")
}

// Count devuelve el número de suscriptores conectados.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Broadcast entrega la notificación a cada suscriptor sin bloquear: si el
// buffer de un suscriptor está lleno, la notificación se descarta para él.
// Que no haya suscriptores conectados no es un error.
func (h *Hub) Broadcast(n *entity.LowStockNotification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		select {
		case sub.ch <- n:
		default:
			h.log.Warn().
				Str("subscriber", sub.id).
				Str("product_id", n.ProductID).
				Msg("buffer de suscriptor lleno, notificación descartada")
		}
	}
}
