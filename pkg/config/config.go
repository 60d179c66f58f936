package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y .env).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL. URL es obligatoria (DATABASE_URL).
type DBConfig struct {
	URL      string
	MaxConns int
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigin   string
	RateLimit    string // formato ulule/limiter: "100-M"
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché del resumen de stock. Addr vacío desactiva la caché.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	OverviewTTL time.Duration
}

// Enabled indica si hay un servidor Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig publicación de alertas de stock bajo. Brokers vacío desactiva la publicación.
type KafkaConfig struct {
	Brokers           []string
	NotificationTopic string
}

// Enabled indica si hay brokers configurados.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// TelemetryConfig exportación de trazas OTLP/HTTP. Endpoint vacío desactiva la exportación.
type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// Load lee la configuración desde variables de entorno; un .env en el directorio actual
// se carga primero en el entorno del proceso. Las env vars ya definidas tienen prioridad.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignoramos error si no existe

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "cafeterias-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			URL:      getString(v, "DATABASE_URL", ""),
			MaxConns: getInt(v, "DB_MAX_CONNS", 10),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "cafeterias-api"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "PORT", 3333),
			ReadTimeout:  getDuration(v, "HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration(v, "HTTP_WRITE_TIMEOUT", 15*time.Second),
			CORSOrigin:   getString(v, "CORS_ORIGIN", "*"),
			RateLimit:    getString(v, "RATE_LIMIT", "100-M"),
		},
		Redis: RedisConfig{
			Addr:        getString(v, "REDIS_ADDR", ""),
			Password:    getString(v, "REDIS_PASSWORD", ""),
			DB:          getInt(v, "REDIS_DB", 0),
			OverviewTTL: getDuration(v, "REDIS_OVERVIEW_TTL", 60*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:           splitList(getString(v, "KAFKA_BROKERS", "")),
			NotificationTopic: getString(v, "KAFKA_NOTIFICATION_TOPIC", "stock.low"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getString(v, "OTEL_SERVICE_NAME", "cafeterias-api"),
		},
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL es obligatorio")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	n, err := strconv.Atoi(v.GetString(key))
	if err != nil {
		return def
	}
	return n
}

// getDuration acepta "30s", "5m" o un número de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := v.GetString(key)
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
