package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv は環境変数を一時的に除去する
// t.Setenv を先に呼ぶことでテスト終了時に元の値へ復元される
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PINECONE_API_KEY", "pc-test")
	t.Setenv("PINECONE_INDEX_NAME", "docs-index")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	for _, key := range []string{
		"OPENAI_MODEL", "OPENAI_EMBEDDING_MODEL", "OPENAI_TEMPERATURE",
		"PINECONE_HOST", "PINECONE_NAMESPACE",
		"CHUNK_SIZE", "CHUNK_OVERLAP", "TOP_K",
	} {
		unsetEnv(t, key)
	}

	settings, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", settings.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", settings.Model)
	assert.Equal(t, "text-embedding-3-small", settings.EmbeddingModel)
	assert.InDelta(t, 0.2, settings.Temperature, 1e-9)
	assert.Equal(t, "pc-test", settings.PineconeAPIKey)
	assert.Equal(t, "docs-index", settings.PineconeIndexName)
	assert.Empty(t, settings.PineconeHost)
	assert.Equal(t, "default", settings.Namespace)
	assert.Equal(t, 800, settings.ChunkSize)
	assert.Equal(t, 200, settings.ChunkOverlap)
	assert.Equal(t, 5, settings.TopK)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_TEMPERATURE", "0.7")
	t.Setenv("PINECONE_NAMESPACE", "staging")
	t.Setenv("CHUNK_SIZE", "1000")
	t.Setenv("CHUNK_OVERLAP", "100")
	t.Setenv("TOP_K", "10")

	settings, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", settings.Model)
	assert.InDelta(t, 0.7, settings.Temperature, 1e-9)
	assert.Equal(t, "staging", settings.Namespace)
	assert.Equal(t, 1000, settings.ChunkSize)
	assert.Equal(t, 100, settings.ChunkOverlap)
	assert.Equal(t, 10, settings.TopK)
}

func TestLoadMissingRequiredListsAll(t *testing.T) {
	unsetEnv(t, "OPENAI_API_KEY")
	unsetEnv(t, "PINECONE_API_KEY")
	t.Setenv("PINECONE_INDEX_NAME", "docs-index")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	assert.Contains(t, err.Error(), "PINECONE_API_KEY")
	assert.NotContains(t, err.Error(), "PINECONE_INDEX_NAME")
}

func TestLoadInvalidNumberFallsBackToDefault(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CHUNK_SIZE", "not-a-number")
	t.Setenv("OPENAI_TEMPERATURE", "warm")

	settings, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 800, settings.ChunkSize)
	assert.InDelta(t, 0.2, settings.Temperature, 1e-9)
}

func TestLoadFromEnvFile(t *testing.T) {
	for _, key := range []string{"OPENAI_API_KEY", "PINECONE_API_KEY", "PINECONE_INDEX_NAME", "TOP_K"} {
		unsetEnv(t, key)
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "OPENAI_API_KEY=sk-from-file\nPINECONE_API_KEY=pc-from-file\nPINECONE_INDEX_NAME=file-index\nTOP_K=3\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	settings, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-file", settings.OpenAIAPIKey)
	assert.Equal(t, "file-index", settings.PineconeIndexName)
	assert.Equal(t, 3, settings.TopK)
}

func TestLoadMissingEnvFileIsNotAnError(t *testing.T) {
	setRequiredEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	assert.NoError(t, err)
}
