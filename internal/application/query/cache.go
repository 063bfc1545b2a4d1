// Package query implementa la caché compartida de lecturas del backend:
// deduplicación de lecturas concurrentes, invalidación por recurso y
// aislamiento por sesión.
package query

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/diego1198/inventory-frontend/pkg/logger"
)

// Status estado observable de una lectura.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Resultados registrados por Recorder.
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultShared = "shared"
)

// Recorder recibe eventos de la caché (métricas).
type Recorder interface {
	CacheRequest(resource, result string)
	CacheInvalidation(resource string)
}

// Broadcaster difunde invalidaciones a otras instancias del gateway.
type Broadcaster interface {
	Publish(ctx context.Context, resources []string) error
}

// Snapshot vista de solo lectura de una entrada.
type Snapshot struct {
	Status    Status
	Stale     bool
	UpdatedAt time.Time
	Err       error
}

type entry struct {
	value     any
	hasValue  bool
	status    Status
	err       error
	stale     bool
	updatedAt time.Time
	usedAt    time.Time
	gen       uint64 // generación del recurso del valor guardado
}

// stamp versiones vigentes al iniciar una lectura.
type stamp struct {
	resource uint64
	scope    uint64
}

// Cache caché concurrente de lecturas. El valor cero no es usable; usar New.
type Cache struct {
	mu        sync.Mutex
	entries   map[Key]*entry
	resGen    map[string]uint64
	scopeGen  map[string]uint64
	group     singleflight.Group
	maxAge    time.Duration
	now       func() time.Time
	log       *logger.Logger
	recorder  Recorder
	broadcast Broadcaster
}

// Option configura la caché.
type Option func(*Cache)

// WithMaxAge fija la edad máxima de una entrada (0 = solo invalidación explícita).
func WithMaxAge(d time.Duration) Option {
	return func(c *Cache) { c.maxAge = d }
}

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRecorder asigna el receptor de métricas.
func WithRecorder(r Recorder) Option {
	return func(c *Cache) { c.recorder = r }
}

// WithBroadcaster difunde cada invalidación local.
func WithBroadcaster(b Broadcaster) Option {
	return func(c *Cache) { c.broadcast = b }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New crea una caché vacía.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[Key]*entry),
		resGen:   make(map[string]uint64),
		scopeGen: make(map[string]uint64),
		now:      time.Now,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get devuelve el valor fresco de key o ejecuta fetch. Como mucho una lectura en
// curso por clave; los llamadores concurrentes comparten el resultado. fetch corre
// con un contexto desacoplado de la cancelación del llamador.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.fresh(key); ok {
		c.record(key.Resource, ResultHit)
		t, ok := v.(T)
		if !ok && v != nil {
			return zero, unexpectedType(key)
		}
		return t, nil
	}

	st := c.begin(key)
	flightKey := key.String() + "#" + strconv.FormatUint(st.resource, 10) + "." + strconv.FormatUint(st.scope, 10)
	detached := context.WithoutCancel(ctx)

	ch := c.group.DoChan(flightKey, func() (any, error) {
		v, err := fetch(detached)
		c.store(key, st, v, err)
		return v, err
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.record(key.Resource, ResultShared)
		} else {
			c.record(key.Resource, ResultMiss)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		t, ok := res.Val.(T)
		if !ok && res.Val != nil {
			return zero, unexpectedType(key)
		}
		return t, nil
	}
}

func unexpectedType(key Key) error {
	return fmt.Errorf("query: tipo inesperado para %s", key.Resource)
}

func (c *Cache) fresh(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.hasValue || e.stale {
		return nil, false
	}
	if c.maxAge > 0 && c.now().Sub(e.updatedAt) >= c.maxAge {
		return nil, false
	}
	e.usedAt = c.now()
	c.log.Debug().Str("resource", key.Resource).Str("params", key.Params).Msg("cache hit")
	return e.value, true
}

// begin registra la entrada en loading si no existe y devuelve las versiones vigentes.
func (c *Cache) begin(key Key) stamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{status: StatusLoading}
		c.entries[key] = e
	}
	e.usedAt = c.now()
	c.log.Debug().Str("resource", key.Resource).Str("params", key.Params).Msg("cache miss")
	return stamp{resource: c.resGen[key.Resource], scope: c.scopeGen[key.Scope]}
}

func (c *Cache) store(key Key, st stamp, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scopeGen[key.Scope] != st.scope {
		// la sesión se cerró durante la lectura
		return
	}
	e, ok := c.entries[key]
	if !ok {
		e = &entry{status: StatusLoading}
		c.entries[key] = e
	}
	if err != nil {
		e.status = StatusError
		e.err = err
		return
	}
	if e.hasValue && st.resource < e.gen {
		// ya hay un resultado más reciente
		return
	}
	e.value = v
	e.gen = st.resource
	e.hasValue = true
	e.status = StatusSuccess
	e.err = nil
	e.updatedAt = c.now()
	e.usedAt = e.updatedAt
	// un resultado iniciado antes de una invalidación nunca queda como fresco
	e.stale = c.resGen[key.Resource] != st.resource
}

func (c *Cache) record(resource, result string) {
	if c.recorder != nil {
		c.recorder.CacheRequest(resource, result)
	}
}

// Invalidate marca como obsoletas todas las lecturas de los recursos dados
// (cualquier sesión, cualquier filtro) y difunde la invalidación si hay broadcaster.
func (c *Cache) Invalidate(ctx context.Context, resources ...string) {
	c.invalidate(resources)
	if c.broadcast == nil || len(resources) == 0 {
		return
	}
	if err := c.broadcast.Publish(context.WithoutCancel(ctx), resources); err != nil {
		c.log.Warn().Err(err).Strs("resources", resources).Msg("difundir invalidación")
	}
}

// ApplyRemote aplica una invalidación recibida de otra instancia sin volver a difundirla.
func (c *Cache) ApplyRemote(resources ...string) {
	c.invalidate(resources)
}

func (c *Cache) invalidate(resources []string) {
	if len(resources) == 0 {
		return
	}
	c.mu.Lock()
	for _, r := range resources {
		c.resGen[r]++
		for k, e := range c.entries {
			if k.Resource == r {
				e.stale = true
			}
		}
	}
	c.mu.Unlock()

	for _, r := range resources {
		if c.recorder != nil {
			c.recorder.CacheInvalidation(r)
		}
	}
	c.log.Info().Strs("resources", resources).Msg("cache invalidada")
}

// ClearScope elimina todas las entradas de una sesión. Las lecturas en curso de
// esa sesión no se guardan al terminar.
func (c *Cache) ClearScope(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scopeGen[scope]++
	for k := range c.entries {
		if k.Scope == scope {
			delete(c.entries, k)
		}
	}
}

// Sweep elimina las entradas que nadie leyó en maxIdle (sesiones abandonadas,
// filtros que no se repiten) y devuelve cuántas quitó. Las lecturas en curso se conservan.
func (c *Cache) Sweep(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for k, e := range c.entries {
		if e.status == StatusLoading || now.Sub(e.usedAt) < maxIdle {
			continue
		}
		delete(c.entries, k)
		n++
	}
	return n
}

// Clear vacía la caché completa.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		delete(c.entries, k)
		c.scopeGen[k.Scope]++
	}
}

// Status estado de la lectura: loading si nunca terminó, error si la última falló.
func (c *Cache) Status(key Key) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return StatusLoading
	}
	return e.status
}

// Snapshot devuelve el estado de la entrada si existe.
func (c *Cache) Snapshot(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{Status: e.status, Stale: e.stale, UpdatedAt: e.updatedAt, Err: e.err}, true
}

// Len número de entradas (tests y métricas).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
