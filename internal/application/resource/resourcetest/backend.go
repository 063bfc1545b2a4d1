// Package resourcetest backend en memoria para probar servicios y páginas sin HTTP.
package resourcetest

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
)

// Call petición registrada.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Backend responde por "METHOD path" con un valor que se serializa a out.
type Backend struct {
	mu        sync.Mutex
	calls     []Call
	responses map[string]any
	errs      map[string]error
}

// New backend vacío: toda ruta sin respuesta devuelve nil sin tocar out.
func New() *Backend {
	return &Backend{responses: map[string]any{}, errs: map[string]error{}}
}

// On fija la respuesta de method+path.
func (f *Backend) On(method, path string, resp any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = resp
}

// Fail hace que method+path devuelva err.
func (f *Backend) Fail(method, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method+" "+path] = err
}

// Do implementa resource.Backend.
func (f *Backend) Do(_ context.Context, method, path string, query url.Values, body, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Method: method, Path: path, Query: query, Body: body})
	resp := f.responses[method+" "+path]
	err := f.errs[method+" "+path]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	if out == nil || resp == nil {
		return nil
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Count cantidad de llamadas a method+path.
func (f *Backend) Count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Last última llamada registrada.
func (f *Backend) Last() Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return Call{}
	}
	return f.calls[len(f.calls)-1]
}
