package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	AuditLogEnabled  bool
	AuditRetention   time.Duration

	// Redis
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	ReportCacheTTL time.Duration

	// Kafka
	KafkaBrokers        []string
	KafkaGroupID        string
	FeatureEventsTopic  string
	DiagnosisEventTopic string
	KafkaEnabled        bool

	// Feature extraction service; empty means inputs carry extracted features
	ExtractorURL     string
	ExtractorTimeout time.Duration

	// Knowledge and rule sources
	KnowledgePaths  []string
	RulesPath       string
	TemplatesPath   string
	DLPRulesPath    string
	TerminologyPath string

	// Lab demo fallback
	LabDemoFallback bool
	LabDemoSeed     int64
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8090"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 4*1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "synaptica"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "synaptica123"),
		PostgresDB:       getEnv("POSTGRES_DB", "diagnostics"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		AuditLogEnabled:  getBoolEnv("AUDIT_LOG_ENABLED", true),
		AuditRetention:   getDuration("AUDIT_RETENTION", 30*24*time.Hour),

		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getIntEnv("REDIS_DB", 0),
		ReportCacheTTL: getDuration("REPORT_CACHE_TTL", 10*time.Minute),

		KafkaBrokers:        getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID:        getEnv("KAFKA_GROUP_ID", "diagnosis-service"),
		FeatureEventsTopic:  getEnv("FEATURE_EVENTS_TOPIC", "feature-events"),
		DiagnosisEventTopic: getEnv("DIAGNOSIS_EVENTS_TOPIC", "diagnosis-events"),
		KafkaEnabled:        getBoolEnv("KAFKA_ENABLED", true),

		ExtractorURL:     getEnv("EXTRACTOR_URL", ""),
		ExtractorTimeout: getDuration("EXTRACTOR_TIMEOUT", 20*time.Second),

		KnowledgePaths:  getStringSliceEnv("KNOWLEDGE_PATHS", nil),
		RulesPath:       getEnv("RULES_PATH", ""),
		TemplatesPath:   getEnv("TEMPLATES_PATH", ""),
		DLPRulesPath:    getEnv("DLP_RULES_PATH", ""),
		TerminologyPath: getEnv("TERMINOLOGY_PATH", ""),

		LabDemoFallback: getBoolEnv("LAB_DEMO_FALLBACK", true),
		LabDemoSeed:     int64(getIntEnv("LAB_DEMO_SEED", 42)),
	}
}

// PostgresDSN renders the connection string for the gorm postgres driver.
func (c *Config) PostgresDSN() string {
	return "host=" + c.PostgresHost +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" port=" + c.PostgresPort +
		" sslmode=" + c.PostgresSSLMode
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
