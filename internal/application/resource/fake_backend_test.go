package resource

import "github.com/diego1198/inventory-frontend/internal/domain/entity"

type memStore struct {
	s  *entity.Session
	ok bool
}

func (m *memStore) Set(s entity.Session) error { m.s, m.ok = &s, true; return nil }
func (m *memStore) Get() (*entity.Session, bool) {
	if !m.ok {
		return nil, false
	}
	return m.s, true
}
func (m *memStore) Clear() error { m.s, m.ok = nil, false; return nil }
