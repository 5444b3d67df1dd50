package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Order    OrderConfig
	Auth     AuthConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port           int
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrateOnStart  bool
}

// RedisConfig points at the cart session store. An empty Addr keeps carts in
// process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig enables order.created events when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type OrderConfig struct {
	Mode           string
	WhatsAppNumber string
	SubmitTimeout  time.Duration
}

type AuthConfig struct {
	JWTSecret         string
	AdminUser         string
	AdminPasswordHash string
	SessionTTL        time.Duration
	CookieName        string
	CartCookieName    string
	CartTTL           time.Duration
}

type LogConfig struct {
	Level string
}

const (
	OrderModeMessage   = "message"
	OrderModePersisted = "persisted"
)

const minJWTSecretLength = 32

// Load reads the optional YAML file at path and applies environment overrides
// (SERVER_PORT, DB_MAX_OPEN_CONNS, ORDER_WHATSAPP_NUMBER, ...). A missing file
// is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetInt("server.port"),
			RequestTimeout: v.GetDuration("server.requestTimeout"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			MaxOpenConns:    v.GetInt("db.maxOpenConns"),
			MaxIdleConns:    v.GetInt("db.maxIdleConns"),
			ConnMaxLifetime: v.GetDuration("db.connMaxLifetime"),
			MigrateOnStart:  v.GetBool("db.migrateOnStart"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetStringSlice("kafka.brokers")),
			Topic:   v.GetString("kafka.topic"),
		},
		Order: OrderConfig{
			Mode:           strings.ToLower(v.GetString("order.mode")),
			WhatsAppNumber: v.GetString("order.whatsappNumber"),
			SubmitTimeout:  v.GetDuration("order.submitTimeout"),
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("auth.jwtSecret"),
			AdminUser:         v.GetString("auth.adminUser"),
			AdminPasswordHash: v.GetString("auth.adminPasswordHash"),
			SessionTTL:        v.GetDuration("auth.sessionTTL"),
			CookieName:        v.GetString("auth.cookieName"),
			CartCookieName:    v.GetString("auth.cartCookieName"),
			CartTTL:           v.GetDuration("auth.cartTTL"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var defaults = []struct {
	key   string
	value interface{}
}{
	{"server.port", 8080},
	{"server.requestTimeout", "15s"},

	{"db.host", "localhost"},
	{"db.port", 3306},
	{"db.user", "pedidos"},
	{"db.password", "secret"},
	{"db.name", "pedidos"},
	{"db.maxOpenConns", 25},
	{"db.maxIdleConns", 5},
	{"db.connMaxLifetime", "5m"},
	{"db.migrateOnStart", true},

	{"redis.addr", ""},
	{"redis.password", ""},
	{"redis.db", 0},

	{"kafka.brokers", []string{}},
	{"kafka.topic", "orders.created"},

	{"order.mode", OrderModePersisted},
	{"order.whatsappNumber", "5648708096"},
	{"order.submitTimeout", "10s"},

	{"auth.jwtSecret", ""},
	{"auth.adminUser", "admin"},
	{"auth.adminPasswordHash", ""},
	{"auth.sessionTTL", "24h"},
	{"auth.cookieName", "app_session_id"},
	{"auth.cartCookieName", "cart_session"},
	{"auth.cartTTL", "72h"},

	{"log.level", "info"},
}

// setDefaults also binds each key to its snake case variable, so
// db.maxOpenConns reads DB_MAX_OPEN_CONNS. AutomaticEnv still accepts
// DB_MAXOPENCONNS.
func setDefaults(v *viper.Viper) {
	for _, d := range defaults {
		v.SetDefault(d.key, d.value)
		_ = v.BindEnv(d.key, envName(d.key))
	}
}

// envName maps "auth.sessionTTL" to "AUTH_SESSION_TTL".
func envName(key string) string {
	var b strings.Builder
	var prev rune
	for _, r := range key {
		switch {
		case r == '.':
			b.WriteByte('_')
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			b.WriteByte('_')
			b.WriteRune(r)
		default:
			b.WriteRune(unicode.ToUpper(r))
		}
		prev = r
	}
	return b.String()
}

func (c *Config) validate() error {
	switch c.Order.Mode {
	case OrderModeMessage, OrderModePersisted:
	default:
		return fmt.Errorf("invalid order mode %q: must be %q or %q", c.Order.Mode, OrderModeMessage, OrderModePersisted)
	}

	if c.Order.Mode == OrderModeMessage && c.Order.WhatsAppNumber == "" {
		return fmt.Errorf("order.whatsappNumber is required in message mode")
	}

	if c.Order.SubmitTimeout <= 0 {
		return fmt.Errorf("order.submitTimeout must be positive")
	}

	if c.Auth.AdminPasswordHash != "" && len(c.Auth.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("auth.jwtSecret must be at least %d bytes when admin login is enabled", minJWTSecretLength)
	}

	return nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
