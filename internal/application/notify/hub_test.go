package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/pkg/logger"
)

func sampleNotification(productID string) *entity.LowStockNotification {
	return &entity.LowStockNotification{
		ProductID:        productID,
		ProductName:      "Café Premium",
		CurrentQuantity:  4,
		MinStockQuantity: 5,
		InventoryID:      "inv-1",
	}
}

func TestHub_SuscribirYDifundir(t *testing.T) {
	hub := NewHub(logger.Nop())

	a := hub.Subscribe()
	b := hub.Subscribe()
	assert.Equal(t, 2, hub.Count())

	hub.Broadcast(sampleNotification("prod-1"))

	// Ambos suscriptores reciben la misma notificación.
	na := <-a.Ch()
	nb := <-b.Ch()
	assert.Equal(t, "prod-1", na.ProductID)
	assert.Same(t, na, nb)
}

func TestHub_SinSuscriptoresNoFalla(t *testing.T) {
	hub := NewHub(logger.Nop())

	assert.NotPanics(t, func() {
		hub.Broadcast(sampleNotification("prod-1"))
	})
	assert.Equal(t, 0, hub.Count())
}

func TestHub_DesuscribirCierraElCanal(t *testing.T) {
	hub := NewHub(logger.Nop())
	sub := hub.Subscribe()

	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.Count())

	_, open := <-sub.Ch()
	assert.False(t, open, "el canal debe quedar cerrado")

	// Desuscribir dos veces es idempotente.
	assert.NotPanics(t, func() { hub.Unsubscribe(sub) })

	// El suscriptor retirado ya no recibe.
	assert.NotPanics(t, func() { hub.Broadcast(sampleNotification("prod-1")) })
}

// Un suscriptor que no consume no bloquea la difusión: al llenarse su buffer
// las notificaciones siguientes se descartan solo para él.
func TestHub_SuscriptorLentoNoBloquea(t *testing.T) {
	hub := NewHub(logger.Nop())
	lento := hub.Subscribe()
	rapido := hub.Subscribe()

	total := subscriberBuffer + 5
	for i := 0; i < total; i++ {
		hub.Broadcast(sampleNotification("prod-1"))
		// El rápido consume al ritmo de la difusión.
		<-rapido.Ch()
	}

	// El lento conserva exactamente su buffer; el resto se descartó.
	assert.Len(t, lento.ch, subscriberBuffer)
}

func TestHub_IDsDeSuscriptorUnicos(t *testing.T) {
	hub := NewHub(logger.Nop())
	a := hub.Subscribe()
	b := hub.Subscribe()
	require.NotEqual(t, a.id, b.id)
}
