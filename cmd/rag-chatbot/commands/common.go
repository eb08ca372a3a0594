package commands

import (
	"context"
	"fmt"
	"log/slog"

	openaiinfra "github.com/jinford/rag-chatbot/internal/infra/openai"
	pineconeinfra "github.com/jinford/rag-chatbot/internal/infra/pinecone"
	"github.com/jinford/rag-chatbot/internal/platform/config"
	"github.com/jinford/rag-chatbot/internal/platform/logger"
)

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config   *config.Settings
	Logger   *slog.Logger
	Embedder *openaiinfra.Embedder
	Chat     *openaiinfra.ChatClient
	Store    *pineconeinfra.Store
}

// NewAppContext は設定を読み込み、OpenAIとPineconeのクライアントを初期化して
// AppContext を作成する
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	// 設定の読み込み（platform層を使用）
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	// ロガーの初期化（platform層を使用）
	appLogger := logger.New(logger.DefaultConfig())

	embedder := openaiinfra.NewEmbedder(cfg.OpenAIAPIKey,
		openaiinfra.WithEmbeddingModel(cfg.EmbeddingModel),
	)

	chat := openaiinfra.NewChatClient(cfg.OpenAIAPIKey,
		openaiinfra.WithChatModel(cfg.Model),
	)

	store, err := pineconeinfra.NewStore(ctx, pineconeinfra.Config{
		APIKey:    cfg.PineconeAPIKey,
		IndexName: cfg.PineconeIndexName,
		Host:      cfg.PineconeHost,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("Pineconeへの接続に失敗: %w", err)
	}

	return &AppContext{
		Config:   cfg,
		Logger:   appLogger,
		Embedder: embedder,
		Chat:     chat,
		Store:    store,
	}, nil
}
