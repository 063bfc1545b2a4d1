// Package api es el cliente HTTP del backend REST de inventario.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diego1198/inventory-frontend/internal/application/session"
	"github.com/diego1198/inventory-frontend/internal/domain"
	"github.com/diego1198/inventory-frontend/pkg/logger"
)

const maxBodyBytes = 4 << 20

// Recorder recibe la duración y el status de cada llamada al backend (0 = fallo de red).
type Recorder interface {
	UpstreamRequest(method string, status int, d time.Duration)
}

// Client cliente del backend. Inyecta el bearer de la sesión del contexto y
// normaliza el sobre {data, timestamp, success}.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
	recorder   Recorder
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRecorder asigna el receptor de métricas.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// NewClient construye el cliente con el timeout de transporte dado.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do ejecuta una llamada. body se serializa como JSON si no es nil; out recibe
// el campo data del sobre o el cuerpo completo si no hay sobre. No reintenta.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if q := query.Encode(); q != "" {
		target += "?" + q
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("api: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s, ok := session.FromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, 0, start)
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend inalcanzable")
		if ctx.Err() != nil {
			return fmt.Errorf("api: %s %s: %w", method, path, ctx.Err())
		}
		return fmt.Errorf("api: %s %s: %w: %w", method, path, domain.ErrNetwork, err)
	}
	defer resp.Body.Close()
	c.observe(method, resp.StatusCode, start)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("api: %s %s: leer respuesta: %w: %w", method, path, domain.ErrNetwork, err)
	}
	if len(raw) > maxBodyBytes {
		c.log.Error().Str("method", method).Str("path", path).Int("limit", maxBodyBytes).Msg("respuesta del backend excede el límite")
		return fmt.Errorf("api: %s %s: respuesta demasiado grande (más de %d bytes)", method, path, maxBodyBytes)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := parseError(resp.StatusCode, path, raw)
		c.log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("backend respondió error")
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrap(raw), out); err != nil {
		return fmt.Errorf("api: %s %s: decodificar respuesta: %w", method, path, err)
	}
	return nil
}

func (c *Client) observe(method string, status int, start time.Time) {
	if c.recorder != nil {
		c.recorder.UpstreamRequest(method, status, time.Since(start))
	}
}

// unwrap devuelve el campo data si el cuerpo es un objeto que lo contiene; si no, el cuerpo completo.
func unwrap(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	if data, ok := env["data"]; ok {
		return data
	}
	return trimmed
}
