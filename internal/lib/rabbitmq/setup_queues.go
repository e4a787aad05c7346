package rabbitmq

// Exchange: имя обменника доменных событий сервиса.
const Exchange = "parking.events"

// Ключи маршрутизации событий жизненного цикла premium.
const (
	RoutingPremiumActivated       = "premium.activated"
	RoutingPremiumCancelRequested = "premium.cancel_requested"
	RoutingPremiumExpired         = "premium.expired"
)

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetPremiumQueues возвращает очереди, которые получают события premium.
func GetPremiumQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "premium.activated", RoutingKey: RoutingPremiumActivated},
		{QueueName: "premium.cancel_requested", RoutingKey: RoutingPremiumCancelRequested},
		{QueueName: "premium.expired", RoutingKey: RoutingPremiumExpired},
	}
}
