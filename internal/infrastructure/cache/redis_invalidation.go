// Package cache difunde invalidaciones de la caché de lecturas entre instancias
// del gateway usando Redis Pub/Sub.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/pkg/logger"
)

const defaultCloseTimeout = 5 * time.Second

var _ query.Broadcaster = (*RedisInvalidator)(nil)

// InvalidationMessage mensaje publicado en el canal.
type InvalidationMessage struct {
	Instance  string   `json:"instance"`
	Resources []string `json:"resources"`
	Timestamp int64    `json:"timestamp"`
}

// RedisConfig conexión a Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// RedisInvalidator publica y recibe invalidaciones. Ignora sus propios mensajes.
type RedisInvalidator struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	instance   string
	log        *logger.Logger

	mu        sync.Mutex
	cancelFn  context.CancelFunc
	isRunning bool
	doneCh    chan struct{}
	doneOnce  sync.Once
}

// NewRedisInvalidator conecta y verifica con PING.
func NewRedisInvalidator(ctx context.Context, cfg RedisConfig, log *logger.Logger) (*RedisInvalidator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: conectar a Redis: %w", err)
	}

	inv := NewRedisInvalidatorWithClient(client, cfg.Channel, log)
	inv.ownsClient = true
	return inv, nil
}

// NewRedisInvalidatorWithClient usa un cliente existente; el llamador lo cierra.
func NewRedisInvalidatorWithClient(client *redis.Client, channel string, log *logger.Logger) *RedisInvalidator {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisInvalidator{
		client:   client,
		channel:  channel,
		instance: uuid.NewString(),
		log:      log,
		doneCh:   make(chan struct{}),
	}
}

// Instance identificador de esta instancia.
func (i *RedisInvalidator) Instance() string { return i.instance }

// Publish difunde la invalidación de resources.
func (i *RedisInvalidator) Publish(ctx context.Context, resources []string) error {
	data, err := i.encode(resources)
	if err != nil {
		return err
	}
	if err := i.client.Publish(ctx, i.channel, data).Err(); err != nil {
		return fmt.Errorf("cache: publicar invalidación: %w", err)
	}
	i.log.Debug().Strs("resources", resources).Str("channel", i.channel).Msg("invalidación publicada")
	return nil
}

func (i *RedisInvalidator) encode(resources []string) ([]byte, error) {
	data, err := json.Marshal(InvalidationMessage{
		Instance:  i.instance,
		Resources: resources,
		Timestamp: time.Now().UnixNano(),
	})
	if err != nil {
		return nil, fmt.Errorf("cache: serializar invalidación: %w", err)
	}
	return data, nil
}

// Subscribe escucha el canal y llama apply por cada invalidación ajena. Bloquea
// hasta que ctx termina o se llama Close.
func (i *RedisInvalidator) Subscribe(ctx context.Context, apply func(resources ...string)) error {
	i.mu.Lock()
	if i.isRunning {
		i.mu.Unlock()
		return fmt.Errorf("cache: suscripción ya activa")
	}
	subCtx, cancel := context.WithCancel(ctx)
	i.isRunning = true
	i.cancelFn = cancel
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.isRunning = false
		i.mu.Unlock()
		i.markDone()
	}()

	pubsub := i.client.Subscribe(subCtx, i.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(subCtx); err != nil {
		return fmt.Errorf("cache: suscribir a %s: %w", i.channel, err)
	}
	i.log.Info().Str("channel", i.channel).Msg("suscrito a invalidaciones")

	ch := pubsub.Channel()
	for {
		select {
		case <-subCtx.Done():
			i.log.Info().Msg("suscripción de invalidaciones detenida")
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				i.log.Warn().Msg("canal de invalidaciones cerrado")
				return nil
			}
			i.handle(msg.Payload, apply)
		}
	}
}

// handle decodifica un mensaje y aplica las invalidaciones de otras instancias.
func (i *RedisInvalidator) handle(payload string, apply func(resources ...string)) bool {
	var m InvalidationMessage
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		i.log.Error().Err(err).Msg("mensaje de invalidación inválido")
		return false
	}
	if m.Instance == i.instance || len(m.Resources) == 0 {
		return false
	}
	i.log.Debug().Strs("resources", m.Resources).Str("from", m.Instance).Msg("invalidación recibida")
	apply(m.Resources...)
	return true
}

func (i *RedisInvalidator) markDone() {
	i.doneOnce.Do(func() { close(i.doneCh) })
}

// Close detiene la suscripción y cierra el cliente si es propio.
func (i *RedisInvalidator) Close() error {
	i.mu.Lock()
	cancelFn := i.cancelFn
	i.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-i.doneCh:
		case <-time.After(defaultCloseTimeout):
			i.log.Warn().Msg("timeout esperando fin de la suscripción")
		}
	}
	if i.ownsClient {
		return i.client.Close()
	}
	return nil
}
