package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del gateway (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	API     APIConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Routes  RoutesConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	LogLevel  string
	StoreName string // encabezado del comprobante PDF
}

// HTTPConfig configuración del servidor HTTP del gateway.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig backend REST externo. BaseURL se fija en tiempo de despliegue.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout devuelve el timeout de transporte como duración.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// JWTConfig lectura de claims del token emitido por el backend.
// Secret vacío: los claims se leen sin verificar la firma (solo para UX).
type JWTConfig struct {
	Secret string
}

// CookieConfig claves de securecookie para la cookie "user".
type CookieConfig struct {
	HashKey  string
	BlockKey string
	Secure   bool
}

// RoutesConfig destinos por defecto de login y del guard de página.
type RoutesConfig struct {
	LoginDefaultRedirect string
	PageFallback         string
}

// CacheConfig caché de lecturas.
type CacheConfig struct {
	MaxAgeSeconds int // 0 = sin expiración por edad, solo por invalidación
	IdleSeconds   int // entradas y carritos sin uso se descartan; 0 = nunca
}

// MaxAge devuelve la edad máxima de una entrada.
func (c CacheConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeSeconds) * time.Second
}

// Idle devuelve el tiempo sin uso tras el que se descartan entradas y carritos.
func (c CacheConfig) Idle() time.Duration {
	return time.Duration(c.IdleSeconds) * time.Second
}

// RedisConfig difusión de invalidaciones entre instancias. Host vacío = deshabilitado.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Channel  string
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Host != "" }

// Addr devuelve host:port.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig almacenamiento local de sesión del cliente de terminal.
type SessionConfig struct {
	File string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, API_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "inventory-web"),
			LogLevel:  getString(v, "LOG_LEVEL", "info"),
			StoreName: getString(v, "STORE_NAME", "Inventario"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		API: APIConfig{
			BaseURL:        strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8080/api"), "/"),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 15),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
		},
		Cookie: CookieConfig{
			HashKey:  getString(v, "COOKIE_HASH_KEY", ""),
			BlockKey: getString(v, "COOKIE_BLOCK_KEY", ""),
			Secure:   getBool(v, "COOKIE_SECURE", false),
		},
		Routes: RoutesConfig{
			LoginDefaultRedirect: getString(v, "LOGIN_DEFAULT_REDIRECT", "/reports"),
			PageFallback:         getString(v, "PAGE_FALLBACK", "/products"),
		},
		Cache: CacheConfig{
			MaxAgeSeconds: getInt(v, "CACHE_MAX_AGE_SECONDS", 0),
			IdleSeconds:   getInt(v, "CACHE_IDLE_SECONDS", 1800),
		},
		Redis: RedisConfig{
			Host:     getString(v, "REDIS_HOST", ""),
			Port:     getInt(v, "REDIS_PORT", 6379),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			Channel:  getString(v, "REDIS_CHANNEL", "inventory:cache:invalidate"),
		},
		Session: SessionConfig{
			File: getString(v, "SESSION_FILE", defaultSessionFile()),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL es requerido")
	}
	if !strings.HasPrefix(cfg.Routes.LoginDefaultRedirect, "/") || !strings.HasPrefix(cfg.Routes.PageFallback, "/") {
		return nil, fmt.Errorf("config: las rutas por defecto deben ser absolutas")
	}
	if n := len(cfg.Cookie.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		return nil, fmt.Errorf("config: COOKIE_BLOCK_KEY debe tener 16, 24 o 32 bytes")
	}
	return cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".inventory-session.json"
	}
	return filepath.Join(home, ".inventory", "session.json")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
