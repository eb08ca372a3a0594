package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings はアプリケーション全体の設定を保持します
// 起動時に一度だけ環境変数から解決され、以降は変更されません
type Settings struct {
	// OpenAI設定
	OpenAIAPIKey   string
	Model          string // チャット補完用モデル
	EmbeddingModel string
	Temperature    float64

	// Pinecone設定
	PineconeAPIKey    string
	PineconeIndexName string
	PineconeHost      string // 指定時はインデックス名より優先される
	Namespace         string

	// チャンク分割設定
	ChunkSize    int
	ChunkOverlap int

	// 検索設定
	TopK int
}

// Load は環境変数または.envファイルから設定を読み込みます
// 必須の環境変数が欠けている場合、リモート呼び出しを行う前にまとめてエラーを返します
func Load(envFilePath string) (*Settings, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	var missing []string
	requireEnv := func(key string) string {
		value := os.Getenv(key)
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}

	settings := &Settings{
		OpenAIAPIKey:      requireEnv("OPENAI_API_KEY"),
		Model:             getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:    getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		Temperature:       getEnvAsFloat("OPENAI_TEMPERATURE", 0.2),
		PineconeAPIKey:    requireEnv("PINECONE_API_KEY"),
		PineconeIndexName: requireEnv("PINECONE_INDEX_NAME"),
		PineconeHost:      getEnv("PINECONE_HOST", ""),
		Namespace:         getEnv("PINECONE_NAMESPACE", "default"),
		ChunkSize:         getEnvAsInt("CHUNK_SIZE", 800),
		ChunkOverlap:      getEnvAsInt("CHUNK_OVERLAP", 200),
		TopK:              getEnvAsInt("TOP_K", 5),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return settings, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat は環境変数を浮動小数点数として取得します
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
