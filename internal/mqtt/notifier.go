package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

const publishTimeout = 5 * time.Second

// Publisher is the part of paho's mqtt.Client the notifier needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// Notifier tells a tenant's players that its schedules changed so they re-resolve.
type Notifier struct {
	client Publisher
	prefix string
}

func NewNotifier(client Publisher, topicPrefix string) *Notifier {
	return &Notifier{client: client, prefix: topicPrefix}
}

// Topic is where players of a tenant listen for schedule changes.
func (n *Notifier) Topic(tenantID int) string {
	return fmt.Sprintf("%s/%d/schedules", n.prefix, tenantID)
}

func (n *Notifier) PublishScheduleChange(ev model.ScheduleEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode schedule event: %w", err)
	}
	topic := n.Topic(ev.TenantID)
	token := n.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out after %s", topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	log.Debug().Str("topic", topic).Str("action", ev.Action).Int("schedule_id", ev.ScheduleID).Msg("schedule change published")
	return nil
}

// Connect opens a client to broker with paho's automatic reconnect.
func Connect(broker, clientID, username, password string) (paho.Client, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetUsername(username)
	opts.SetPassword(password)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(paho.Client) {
		log.Info().Str("broker", broker).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Warn().Err(err).Str("broker", broker).Msg("MQTT connection lost")
	}

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return client, nil
}
