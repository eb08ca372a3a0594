package ask

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service は検索拡張生成（RAG）による質問応答のユースケースを提供する
type Service struct {
	embedder    Embedder
	retriever   Retriever
	completer   Completer
	topK        int
	temperature float64
	logger      *slog.Logger
}

type serviceOptions struct {
	logger *slog.Logger
}

// ServiceOption は Service のオプション設定
type ServiceOption func(*serviceOptions)

// WithLogger は Service にロガーを設定する
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService は新しい Service を作成する
func NewService(embedder Embedder, retriever Retriever, completer Completer, topK int, temperature float64, opts ...ServiceOption) *Service {
	options := serviceOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	return &Service{
		embedder:    embedder,
		retriever:   retriever,
		completer:   completer,
		topK:        topK,
		temperature: temperature,
		logger:      options.logger,
	}
}

// Ask は質問に関連するチャンクを検索し、それを根拠にした回答を生成する
func (s *Service) Ask(ctx context.Context, query string) (string, error) {
	contexts, err := s.retrieve(ctx, query)
	if err != nil {
		return "", err
	}

	s.logger.Debug("コンテキストを取得", "query", query, "contexts", len(contexts))

	answer, err := s.completer.Complete(ctx, CompletionRequest{
		System:      systemMessage,
		Prompt:      BuildPrompt(query, contexts),
		Temperature: s.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

// retrieve は質問文のEmbeddingで近傍検索し、チャンク原文の一覧を返す
func (s *Service) retrieve(ctx context.Context, query string) ([]string, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := s.retriever.Query(ctx, vector, s.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}

	contexts := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Chunk != "" {
			contexts = append(contexts, match.Chunk)
		}
	}
	return contexts, nil
}
