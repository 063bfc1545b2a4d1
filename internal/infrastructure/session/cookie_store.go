package session

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/securecookie"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/internal/domain/repository"
)

// Nombres de cookie.
const (
	TokenCookie = "access_token"
	UserCookie  = "user"
)

// CookieCodec firma (y opcionalmente cifra) la cookie del usuario.
type CookieCodec struct {
	sc     *securecookie.SecureCookie
	secure bool
}

// NewCookieCodec construye el codec. hashKey vacío genera una clave aleatoria:
// las sesiones no sobreviven a un reinicio. blockKey vacío = solo firma.
func NewCookieCodec(hashKey, blockKey string, secure bool) *CookieCodec {
	hk := []byte(hashKey)
	if len(hk) == 0 {
		hk = securecookie.GenerateRandomKey(32)
	}
	var bk []byte
	if blockKey != "" {
		bk = []byte(blockKey)
	}
	sc := securecookie.New(hk, bk)
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &CookieCodec{sc: sc, secure: secure}
}

// CookieStore store por request sobre las cookies de fiber. No es seguro para
// uso concurrente: vive lo que dura un request.
type CookieStore struct {
	c       *fiber.Ctx
	codec   *CookieCodec
	written *entity.Session
	cleared bool
}

var _ repository.SessionStore = (*CookieStore)(nil)

// Store devuelve el store del request c.
func (cc *CookieCodec) Store(c *fiber.Ctx) *CookieStore {
	return &CookieStore{c: c, codec: cc}
}

// Set escribe access_token (legible por el cliente) y user (firmada).
func (s *CookieStore) Set(sess entity.Session) error {
	encoded, err := s.codec.sc.Encode(UserCookie, sess.User)
	if err != nil {
		return fmt.Errorf("session: codificar cookie: %w", err)
	}
	s.c.Cookie(s.cookie(TokenCookie, sess.Token))
	s.c.Cookie(s.cookie(UserCookie, encoded))
	cp := sess
	s.written, s.cleared = &cp, false
	return nil
}

// Get lee las cookies del request (o lo escrito en este mismo request).
func (s *CookieStore) Get() (*entity.Session, bool) {
	if s.cleared {
		return nil, false
	}
	if s.written != nil {
		cp := *s.written
		return &cp, true
	}
	token := s.c.Cookies(TokenCookie)
	raw := s.c.Cookies(UserCookie)
	if token == "" || raw == "" {
		return nil, false
	}
	var u entity.User
	if err := s.codec.sc.Decode(UserCookie, raw, &u); err != nil {
		return nil, false
	}
	return &entity.Session{Token: token, User: u}, true
}

// Clear expira ambas cookies. Idempotente.
func (s *CookieStore) Clear() error {
	for _, name := range []string{TokenCookie, UserCookie} {
		ck := s.cookie(name, "")
		ck.Expires = time.Unix(0, 0)
		s.c.Cookie(ck)
	}
	s.written, s.cleared = nil, true
	return nil
}

func (s *CookieStore) cookie(name, value string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.codec.secure,
		HTTPOnly: name == UserCookie,
	}
}
