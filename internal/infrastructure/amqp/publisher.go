package amqp

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tu-usuario/stock-core/internal/application/dto"
	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/pkg/logger"
)

// Publisher reenvía las alertas de stock bajo a una cola AMQP durable para
// consumidores externos (email, dashboards, etc.). Es un suscriptor más del
// hub: su caída o lentitud nunca afecta a las mutaciones.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *logger.Logger
}

// NewPublisher conecta al broker y declara la cola durable.
func NewPublisher(url, queue string, log *logger.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue, log: log}, nil
}

// Close cierra canal y conexión.
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Publish envía una alerta a la cola como JSON.
func (p *Publisher) Publish(ctx context.Context, n *entity.LowStockNotification) error {
	body, err := json.Marshal(dto.FromNotification(n))
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Forward consume del canal del suscriptor y publica cada alerta hasta que el
// canal se cierre o el contexto se cancele. Pensado para correr en su propia
// goroutine; los fallos de publicación solo se loggean.
func (p *Publisher) Forward(ctx context.Context, ch <-chan *entity.LowStockNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := p.Publish(ctx, n); err != nil {
				p.log.Error().Err(err).Str("product_id", n.ProductID).Msg("publicación AMQP de alerta fallida")
			}
		}
	}
}
