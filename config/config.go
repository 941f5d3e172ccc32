package config

import "time"

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"cuvee-api"`
	Port                          int      `env:"PORT" env-default:"3004"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"30"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	ReadHeaderTimeoutSeconds      int      `env:"HTTP_SERVER_READ_HEADER_TIMEOUT_SECONDS" env-default:"10"`
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST,PUT,DELETE"`
	StartupMaxAttempts            int      `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// PostgreSQL (catalog cache + review queue)
	DatabaseDriver                string        `env:"DB_DRIVER" env-default:"postgres"`
	DatabaseHost                  string        `env:"DB_HOST" env-default:""`
	DatabasePort                  string        `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName              string        `env:"DB_USER_NAME" env-default:""`
	DatabasePassword              string        `env:"DB_PASSWORD" env-default:""`
	DatabaseName                  string        `env:"DB_NAME" env-default:"cuvee"`
	DatabaseSSLMode               string        `env:"DB_SQL_MODE" env-default:"disable"`
	DatabaseMaxOpenConns          int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DatabaseMaxIdleConns          int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DatabaseConnMaxLifetime       time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s"`
	DatabaseMigrationFolderPath   string        `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/pg"`
	DatabaseMigrationVersion      int           `env:"DB_MIGRATION_VERSION" env-default:"0"`
	DatabaseMigrationForce        int           `env:"DB_MIGRATION_FORCE" env-default:"0"`
	DatabaseMigrationAutoRollback bool          `env:"DB_MIGRATION_AUTO_ROLLBACK" env-default:"true"`

	// Shopify Admin API (product catalog source)
	ShopifyShopHandle string `env:"SHOPIFY_SHOP_HANDLE" env-default:""`
	ShopifyAPIVersion string `env:"SHOPIFY_API_VERSION" env-default:"2024-10"`
	ShopifyAPIToken   string `env:"SHOPIFY_API_TOKEN" env-default:""`
	ShopifyPageSize   int    `env:"SHOPIFY_PAGE_SIZE" env-default:"250"`

	// Gemini (optional LLM scorer backend)
	GeminiEndpoint       string        `env:"GEMINI_ENDPOINT" env-default:"https://generativelanguage.googleapis.com"`
	GeminiAPIKey         string        `env:"GEMINI_API_KEY" env-default:""`
	GeminiModel          string        `env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
	GeminiRequestTimeout time.Duration `env:"GEMINI_REQUEST_TIMEOUT" env-default:"30s"`

	// Kafka Producer (match decision events)
	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaOutputTopic  string   `env:"KAFKA_OUTPUT_TOPIC" env-default:"match-events"`
	KafkaBatchSize    int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression  string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`
	KafkaEnabled      bool     `env:"KAFKA_ENABLED" env-default:"true"`

	// Matching
	RetrievalLimit     int    `env:"RETRIEVAL_LIMIT" env-default:"5"`
	TopCandidates      int    `env:"TOP_CANDIDATES" env-default:"3"`
	ReviewThreshold    int    `env:"REVIEW_THRESHOLD" env-default:"7"`
	CompareWorkerCount int    `env:"COMPARE_WORKER_COUNT" env-default:"4"`
	ScorerBackend      string `env:"SCORER_BACKEND" env-default:"rules"` // rules | llm
}
