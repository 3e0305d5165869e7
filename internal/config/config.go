package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Embedding EmbeddingConfig
	Chunking  ChunkingConfig
	Retrieval RetrievalConfig
	Research  ResearchConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	VectorizeTopic     string
}

type DatabaseConfig struct {
	Connection string
}

type EmbeddingConfig struct {
	Provider       string // "ollama" or "none"
	OllamaBaseURL  string
	OllamaModel    string
	Dimension      int
	RequestTimeout int // seconds
}

type ChunkingConfig struct {
	WindowWords  int
	OverlapWords int
}

type RetrievalConfig struct {
	TopK     int
	MinScore float64
}

type ResearchConfig struct {
	CacheTTLHours   int
	WebSearchURL    string
	SamGovURL       string
	SamGovAPIKey    string
	USASpendingURL  string
	RequestTimeout  int // seconds
	MaxResultsPerQ  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			VectorizeTopic:     getEnv("VECTORIZE_DOCUMENT_TOPIC_NAME", "VECTORIZE_DOCUMENT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Embedding: EmbeddingConfig{
			Provider:       getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			Dimension:      getEnvAsInt("EMBEDDING_DIMENSION", 384),
			RequestTimeout: getEnvAsInt("EMBEDDING_TIMEOUT_SECONDS", 30),
		},
		Chunking: ChunkingConfig{
			WindowWords:  getEnvAsInt("CHUNK_WINDOW_WORDS", 500),
			OverlapWords: getEnvAsInt("CHUNK_OVERLAP_WORDS", 50),
		},
		Retrieval: RetrievalConfig{
			TopK:     getEnvAsInt("RETRIEVAL_TOP_K", 8),
			MinScore: getEnvAsFloat("RETRIEVAL_MIN_SCORE", 0.25),
		},
		Research: ResearchConfig{
			CacheTTLHours:  getEnvAsInt("RESEARCH_CACHE_TTL_HOURS", 24),
			WebSearchURL:   getEnv("WEB_SEARCH_BASE_URL", "https://html.duckduckgo.com/html/"),
			SamGovURL:      getEnv("SAM_GOV_BASE_URL", "https://api.sam.gov/opportunities/v2"),
			SamGovAPIKey:   getEnv("SAM_GOV_API_KEY", ""),
			USASpendingURL: getEnv("USASPENDING_BASE_URL", "https://api.usaspending.gov/api/v2"),
			RequestTimeout: getEnvAsInt("RESEARCH_TIMEOUT_SECONDS", 20),
			MaxResultsPerQ: getEnvAsInt("RESEARCH_MAX_RESULTS", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
