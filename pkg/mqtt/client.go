package mqtt

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultKeepAlive      = 60 * time.Second
	defaultConnectTimeout = 10 * time.Second
	defaultPublishTimeout = 5 * time.Second
)

type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	// PublishTimeout bounds a publish when the caller's context has no deadline.
	PublishTimeout time.Duration
	Logger         *zap.Logger
}

// Client is a publish-only connection to a broker. It reconnects on its own
// after the first successful Connect.
type Client struct {
	client  mqtt.Client
	broker  string
	timeout time.Duration
	log     *zap.Logger
}

func NewClient(config *Config) *Client {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Brokers drop the older session when two clients share an id.
	clientID := config.ClientID
	if clientID == "" {
		clientID = "shopping-list-api"
	}
	clientID = clientID + "-" + uuid.NewString()[:8]

	timeout := config.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.Broker)
	opts.SetClientID(clientID)
	opts.SetUsername(config.Username)
	opts.SetPassword(config.Password)
	opts.SetCleanSession(true)
	opts.SetKeepAlive(defaultKeepAlive)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetOrderMatters(false)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Info("MQTT client connected", zap.String("broker", config.Broker), zap.String("client_id", clientID))
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn("MQTT connection lost", zap.Error(err))
	})
	opts.SetReconnectingHandler(func(mqtt.Client, *mqtt.ClientOptions) {
		log.Info("Reconnecting to MQTT broker", zap.String("broker", config.Broker))
	})

	return &Client{
		client:  mqtt.NewClient(opts),
		broker:  config.Broker,
		timeout: timeout,
		log:     log,
	}
}

// Connect blocks until the broker accepts the connection or the connect
// timeout passes.
func (c *Client) Connect() error {
	c.log.Info("Connecting to MQTT broker", zap.String("broker", c.broker))

	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return fmt.Errorf("timed out connecting to MQTT broker %s", c.broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	return nil
}

// Publish sends payload and waits for the broker's acknowledgement, the
// publish timeout, or ctx, whichever comes first.
func (c *Client) Publish(ctx context.Context, topic string, qos byte, retained bool, payload []byte) error {
	if !c.client.IsConnectionOpen() {
		return fmt.Errorf("not connected to MQTT broker %s", c.broker)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token := c.client.Publish(topic, qos, retained, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return fmt.Errorf("publishing to %s: %w", topic, ctx.Err())
	}
}

func (c *Client) Disconnect() {
	c.log.Info("Disconnecting from MQTT broker")
	c.client.Disconnect(250)
}

func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}
