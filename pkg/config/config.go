package config

import (
	"time"

	"github.com/shopspring/decimal"
)

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[corebank]"`
}

// DB selects the store of record. An empty URL keeps everything in memory,
// postgres:// URLs use PostgreSQL and anything else is a SQLite DSN.
type DB struct {
	Url string `envconfig:"URL"`
}

type Redis struct {
	URL       string `envconfig:"URL"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"corebank:"`
}

type EventBus struct {
	Driver string `envconfig:"DRIVER" default:"memory"`
	Stream string `envconfig:"STREAM" default:"corebank-events"`
	Group  string `envconfig:"GROUP" default:"corebank"`
}

type Kafka struct {
	Brokers string `envconfig:"BROKERS"`
	Topic   string `envconfig:"TOPIC" default:"corebank.events"`
	GroupID string `envconfig:"GROUP_ID" default:"corebank"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Auth protects the settings endpoints when JwtSecret is set.
type Auth struct {
	JwtSecret string `envconfig:"JWT_SECRET"`
}

type Idempotency struct {
	TTL time.Duration `envconfig:"TTL" default:"24h"`
}

type Fee struct {
	Policy string          `envconfig:"POLICY" default:"no"`
	Flat   decimal.Decimal `envconfig:"FLAT" default:"0.50"`
	Rate   decimal.Decimal `envconfig:"RATE" default:"0.015"`
	Tiers  Tiers           `envconfig:"TIERS" default:"0:0.01,100:0.02"`
}

type Risk struct {
	Rules          []string        `envconfig:"RULES" default:"max_amount,velocity,daily_limit"`
	MaxAmount      decimal.Decimal `envconfig:"MAX_AMOUNT" default:"1000"`
	VelocityMax    int             `envconfig:"VELOCITY_MAX" default:"5"`
	VelocityWindow time.Duration   `envconfig:"VELOCITY_WINDOW" default:"10m"`
	DailyLimit     decimal.Decimal `envconfig:"DAILY_LIMIT" default:"2000"`
	Timezone       string          `envconfig:"TIMEZONE" default:"UTC"`
}

type App struct {
	Env         string       `envconfig:"APP_ENV" default:"development"`
	Server      *Server      `envconfig:"SERVER"`
	Log         *Log         `envconfig:"LOG"`
	DB          *DB          `envconfig:"DATABASE"`
	Redis       *Redis       `envconfig:"REDIS"`
	EventBus    *EventBus    `envconfig:"EVENTBUS"`
	Kafka       *Kafka       `envconfig:"KAFKA"`
	RateLimit   *RateLimit   `envconfig:"RATE_LIMIT"`
	Auth        *Auth        `envconfig:"AUTH"`
	Idempotency *Idempotency `envconfig:"IDEMPOTENCY"`
	Fee         *Fee         `envconfig:"FEE"`
	Risk        *Risk        `envconfig:"RISK"`
}
