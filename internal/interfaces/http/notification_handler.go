package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-core/internal/application/dto"
	"github.com/tu-usuario/stock-core/internal/application/notify"
)

// WebsocketUpgrade deja pasar solo peticiones de upgrade websocket.
func WebsocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// NotificationStream conecta al cliente como suscriptor del hub y le reenvía
// cada alerta de stock bajo como JSON hasta que se desconecte. La conexión y
// desconexión son los eventos de ciclo de vida del suscriptor.
func NotificationStream(hub *notify.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		sub := hub.Subscribe()
		defer hub.Unsubscribe(sub)

		// Detectar cierre del cliente con una goroutine de lectura.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case n, ok := <-sub.Ch():
				if !ok {
					return
				}
				if err := conn.WriteJSON(dto.FromNotification(n)); err != nil {
					return
				}
			}
		}
	})
}
