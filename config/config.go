package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Drivers de almacenamiento soportados
const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

// Config contiene la configuración de la aplicación
type Config struct {
	Port          string
	DBDriver      string
	MongoURI      string
	MySQLDSN      string
	JWTSecret     string
	JWTExpiry     time.Duration
	ClientOrigin  string
	MemcachedHost string
	RabbitMQURL   string
	EventsQueue   string
}

// LoadConfig carga la configuración desde variables de entorno con valores por defecto.
// Si existe un archivo .env se carga primero.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	expiry, err := ParseExpiry(getEnv("JWT_EXPIRY", "7d"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}

	driver := getEnv("DB_DRIVER", DriverMongo)
	if driver != DriverMongo && driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      driver,
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost/dibs"),
		MySQLDSN:      mysqlDSN(),
		JWTSecret:     secret,
		JWTExpiry:     expiry,
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		MemcachedHost: getEnv("MEMCACHED_HOST", ""),
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		EventsQueue:   getEnv("EVENTS_QUEUE", "dibs_events"),
	}
	return cfg, nil
}

// ParseExpiry interpreta la duración de los tokens.
// Acepta el formato de time.ParseDuration y además días ("7d").
func ParseExpiry(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("expiry must be positive, got %s", value)
	}
	return d, nil
}

// mysqlDSN arma el DSN de MySQL
// Formato: usuario:password@tcp(host:puerto)/base_de_datos?opciones
func mysqlDSN() string {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		getEnv("DB_USER", "dibs_user"),
		getEnv("DB_PASSWORD", "dibs_password"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "3306"),
		getEnv("DB_NAME", "dibs"),
	)
}

// getEnv obtiene una variable de entorno o retorna un valor por defecto
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
