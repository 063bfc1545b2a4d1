package query

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	mu            sync.Mutex
	requests      map[string]int
	invalidations map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{requests: map[string]int{}, invalidations: map[string]int{}}
}

func (r *fakeRecorder) CacheRequest(resource, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[resource+":"+result]++
}

func (r *fakeRecorder) CacheInvalidation(resource string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidations[resource]++
}

type fakeBroadcaster struct {
	mu        sync.Mutex
	published [][]string
}

func (b *fakeBroadcaster) Publish(_ context.Context, resources []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, resources)
	return nil
}

func counting(calls *int32, value []string) func(context.Context) ([]string, error) {
	return func(context.Context) ([]string, error) {
		atomic.AddInt32(calls, 1)
		return value, nil
	}
}

func TestGet_SegundaLecturaUsaCache(t *testing.T) {
	c := New()
	key := NewKey("s1", "products", nil)
	var calls int32

	v1, err := Get(context.Background(), c, key, counting(&calls, []string{"a"}))
	require.NoError(t, err)
	v2, err := Get(context.Background(), c, key, counting(&calls, []string{"b"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, v1)
	assert.Equal(t, []string{"a"}, v2)
	assert.EqualValues(t, 1, calls)
	assert.Equal(t, StatusSuccess, c.Status(key))
}

func TestGet_LecturasConcurrentesUnaSolaLlamada(t *testing.T) {
	rec := newFakeRecorder()
	c := New(WithRecorder(rec))
	key := NewKey("s1", "products", nil)

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []string{"p1"}, nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([][]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Get(context.Background(), c, key, fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	// dar tiempo a que todas las goroutines se unan a la lectura en curso
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls, "una sola llamada de red")
	for _, r := range results {
		assert.Equal(t, []string{"p1"}, r)
	}
}

func TestInvalidate_ProximaLecturaRefetch_CualquierFiltro(t *testing.T) {
	c := New()
	var calls int32
	all := NewKey("s1", "products", nil)
	filtered := NewKey("s1", "products", url.Values{"category": {"bebidas"}})
	other := NewKey("s1", "customers", nil)

	for _, k := range []Key{all, filtered, other} {
		_, err := Get(context.Background(), c, k, counting(&calls, nil))
		require.NoError(t, err)
	}
	require.EqualValues(t, 3, calls)

	c.Invalidate(context.Background(), "products")

	for _, k := range []Key{all, filtered, other} {
		_, err := Get(context.Background(), c, k, counting(&calls, nil))
		require.NoError(t, err)
	}
	assert.EqualValues(t, 5, calls, "solo las lecturas de products se repiten")
}

func TestInvalidate_CruzaSesiones(t *testing.T) {
	c := New()
	var calls int32
	a := NewKey("sesion-a", "sales", nil)
	b := NewKey("sesion-b", "sales", nil)
	_, _ = Get(context.Background(), c, a, counting(&calls, nil))
	_, _ = Get(context.Background(), c, b, counting(&calls, nil))

	c.Invalidate(context.Background(), "sales")

	snapA, _ := c.Snapshot(a)
	snapB, _ := c.Snapshot(b)
	assert.True(t, snapA.Stale)
	assert.True(t, snapB.Stale)
}

func TestGet_LecturaIniciadaAntesDeInvalidarNoQuedaFresca(t *testing.T) {
	c := New()
	key := NewKey("s1", "products", nil)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan []string)
	go func() {
		v, _ := Get(context.Background(), c, key, func(context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"viejo"}, nil
		})
		done <- v
	}()
	<-started

	// escritura exitosa mientras la lectura vieja sigue en curso
	c.Invalidate(context.Background(), "products")

	var calls int32
	v, err := Get(context.Background(), c, key, counting(&calls, []string{"nuevo"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"nuevo"}, v, "no se une a la lectura previa a la invalidación")
	assert.EqualValues(t, 1, calls)

	close(release)
	assert.Equal(t, []string{"viejo"}, <-done)

	snap, ok := c.Snapshot(key)
	require.True(t, ok)
	assert.False(t, snap.Stale, "el resultado viejo no pisa al nuevo")

	v, err = Get(context.Background(), c, key, counting(&calls, []string{"otro"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"nuevo"}, v)
	assert.EqualValues(t, 1, calls)
}

func TestGet_LecturaViejaSinResultadoNuevoQuedaObsoleta(t *testing.T) {
	c := New()
	key := NewKey("s1", "products", nil)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = Get(context.Background(), c, key, func(context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"viejo"}, nil
		})
	}()
	<-started
	c.Invalidate(context.Background(), "products")
	close(release)
	<-done

	snap, ok := c.Snapshot(key)
	require.True(t, ok)
	assert.True(t, snap.Stale)

	var calls int32
	_, err := Get(context.Background(), c, key, counting(&calls, []string{"nuevo"}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls)
}

func TestGet_ErrorNoSeCacheaYNoPisaDatos(t *testing.T) {
	c := New()
	key := NewKey("s1", "users", nil)
	boom := errors.New("boom")

	_, err := Get(context.Background(), c, key, func(context.Context) ([]string, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StatusError, c.Status(key))

	var calls int32
	v, err := Get(context.Background(), c, key, counting(&calls, []string{"u1"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, v)
	assert.EqualValues(t, 1, calls, "el error no se guarda como fresco")

	c.Invalidate(context.Background(), "users")
	_, err = Get(context.Background(), c, key, func(context.Context) ([]string, error) { return nil, boom })
	assert.Error(t, err)

	snap, _ := c.Snapshot(key)
	assert.Equal(t, StatusError, snap.Status)
	assert.True(t, snap.Stale)
}

func TestStatus_SinCompletarEsLoading(t *testing.T) {
	c := New()
	assert.Equal(t, StatusLoading, c.Status(NewKey("s1", "products", nil)))
}

func TestGet_MaxAgeExpira(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c := New(WithMaxAge(time.Minute), WithClock(func() time.Time { return now }))
	key := NewKey("s1", "reports", nil)
	var calls int32

	_, _ = Get(context.Background(), c, key, counting(&calls, nil))
	now = now.Add(30 * time.Second)
	_, _ = Get(context.Background(), c, key, counting(&calls, nil))
	assert.EqualValues(t, 1, calls)

	now = now.Add(time.Minute)
	_, _ = Get(context.Background(), c, key, counting(&calls, nil))
	assert.EqualValues(t, 2, calls)
}

func TestSweep_SesionesAbandonadasNoSeAcumulan(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c := New(WithClock(func() time.Time { return now }))
	var calls int32
	for i := 0; i < 1000; i++ {
		key := NewKey("s"+strconv.Itoa(i), "products", url.Values{"page": {"1"}})
		_, err := Get(context.Background(), c, key, counting(&calls, []string{"a"}))
		require.NoError(t, err)
	}
	c.Invalidate(context.Background(), "products")
	require.Equal(t, 1000, c.Len())

	now = now.Add(10 * time.Minute)
	activa := NewKey("activa", "products", nil)
	_, _ = Get(context.Background(), c, activa, counting(&calls, nil))

	now = now.Add(25 * time.Minute)
	assert.Equal(t, 1000, c.Sweep(30*time.Minute))
	assert.Equal(t, 1, c.Len())

	_, ok := c.Snapshot(activa)
	assert.True(t, ok)
	assert.Zero(t, c.Sweep(0))
}

func TestGet_TipoInesperadoEnCache(t *testing.T) {
	c := New()
	key := NewKey("s1", "products", nil)
	var calls int32
	_, err := Get(context.Background(), c, key, counting(&calls, []string{"a"}))
	require.NoError(t, err)

	n, err := Get(context.Background(), c, key, func(context.Context) (int, error) { return 7, nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tipo inesperado para products")
	assert.Zero(t, n)
}

func TestClearScope_SoloLaSesion(t *testing.T) {
	c := New()
	var calls int32
	a := NewKey("a", "products", nil)
	b := NewKey("b", "products", nil)
	_, _ = Get(context.Background(), c, a, counting(&calls, nil))
	_, _ = Get(context.Background(), c, b, counting(&calls, nil))

	c.ClearScope("a")

	_, okA := c.Snapshot(a)
	_, okB := c.Snapshot(b)
	assert.False(t, okA)
	assert.True(t, okB)
	assert.Equal(t, 1, c.Len())
}

func TestClearScope_LecturaEnCursoNoSeGuarda(t *testing.T) {
	c := New()
	key := NewKey("a", "products", nil)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = Get(context.Background(), c, key, func(context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"x"}, nil
		})
	}()
	<-started
	c.ClearScope("a")
	close(release)
	<-done

	_, ok := c.Snapshot(key)
	assert.False(t, ok)
}

func TestGet_CancelarLlamadorNoCancelaLectura(t *testing.T) {
	c := New()
	key := NewKey("s1", "sales", nil)
	release := make(chan struct{})
	fetchErr := make(chan error, 1)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-release
		cancel()
	}()

	started := make(chan struct{})
	go func() {
		_, err := Get(ctx, c, key, func(fctx context.Context) ([]string, error) {
			close(started)
			close(release)
			time.Sleep(20 * time.Millisecond)
			fetchErr <- fctx.Err()
			return []string{"v"}, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	}()
	<-started

	assert.NoError(t, <-fetchErr, "el fetch no ve la cancelación del llamador")
	assert.Eventually(t, func() bool { return c.Status(key) == StatusSuccess }, time.Second, 5*time.Millisecond)
}

func TestInvalidate_DifundeYRegistraMetricas(t *testing.T) {
	rec := newFakeRecorder()
	b := &fakeBroadcaster{}
	c := New(WithRecorder(rec), WithBroadcaster(b))

	c.Invalidate(context.Background(), "sales", "products")
	c.ApplyRemote("reports")

	assert.Equal(t, [][]string{{"sales", "products"}}, b.published, "ApplyRemote no vuelve a difundir")
	assert.Equal(t, 1, rec.invalidations["sales"])
	assert.Equal(t, 1, rec.invalidations["reports"])
}

func TestGet_RegistraHitMiss(t *testing.T) {
	rec := newFakeRecorder()
	c := New(WithRecorder(rec))
	key := NewKey("s1", "categories", nil)
	var calls int32

	_, _ = Get(context.Background(), c, key, counting(&calls, nil))
	_, _ = Get(context.Background(), c, key, counting(&calls, nil))

	assert.Equal(t, 1, rec.requests["categories:miss"])
	assert.Equal(t, 1, rec.requests["categories:hit"])
}

func TestNewKey_ParametrosCanonicos(t *testing.T) {
	a := NewKey("s", "products", url.Values{"b": {"2"}, "a": {"1"}, "vacio": {""}})
	b := NewKey("s", "products", url.Values{"a": {"1"}, "b": {"2"}})
	assert.Equal(t, a, b)
	assert.Equal(t, NewKey("s", "products", nil), NewKey("s", "products", url.Values{"category": {""}}))
	assert.Equal(t, "s|products|a=1&b=2", a.String())
}
