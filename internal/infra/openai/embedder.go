package openai

import (
	"context"
	"fmt"

	"github.com/jinford/rag-chatbot/internal/core/ask"
	"github.com/jinford/rag-chatbot/internal/core/ingestion"
	"github.com/jinford/rag-chatbot/internal/infra/retry"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultEmbeddingModel はモデル未指定時のデフォルトモデル
const DefaultEmbeddingModel = "text-embedding-3-small"

// Embedder は OpenAI API を使用してテキストをベクトルに変換する
// 一時的な失敗は共通のリトライポリシーで再試行し、
// 枯渇した場合は ingestion.ErrEmbeddingFailed に最後の原因を包んで返す
type Embedder struct {
	client openai.Client
	model  string
	policy retry.Policy
}

type embedderOptions struct {
	model   string
	policy  retry.Policy
	reqOpts []option.RequestOption
}

// EmbedderOption は Embedder のオプション設定
type EmbedderOption func(*embedderOptions)

// WithEmbeddingModel はモデル名を上書きする
func WithEmbeddingModel(model string) EmbedderOption {
	return func(o *embedderOptions) {
		o.model = model
	}
}

// WithEmbeddingRetryPolicy はリトライポリシーを上書きする
func WithEmbeddingRetryPolicy(policy retry.Policy) EmbedderOption {
	return func(o *embedderOptions) {
		o.policy = policy
	}
}

// WithEmbeddingRequestOptions はSDKへ渡す追加オプションを設定する
func WithEmbeddingRequestOptions(opts ...option.RequestOption) EmbedderOption {
	return func(o *embedderOptions) {
		o.reqOpts = append(o.reqOpts, opts...)
	}
}

// NewEmbedder は新しい Embedder を作成する
func NewEmbedder(apiKey string, opts ...EmbedderOption) *Embedder {
	options := embedderOptions{
		model:  DefaultEmbeddingModel,
		policy: retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	// SDK内蔵のリトライは無効化する（リトライ回数は共通ポリシーだけが決める）
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, options.reqOpts...)

	return &Embedder{
		client: openai.NewClient(reqOpts...),
		model:  options.model,
		policy: options.policy,
	}
}

// EmbedBatch はバッチで Embedding を生成する
// 戻り値は入力と同じ長さで、i番目のベクトルはi番目の入力に対応する
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
	}

	var resp *openai.CreateEmbeddingResponse
	err := e.policy.Do(ctx, func() error {
		r, err := e.client.Embeddings.New(ctx, params)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ingestion.ErrEmbeddingFailed, err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", ingestion.ErrEmbeddingFailed, len(resp.Data), len(texts))
	}

	// レスポンスの並びではなくindexフィールドに従って入力順に揃える
	embeddings := make([][]float32, len(texts))
	for _, data := range resp.Data {
		idx := int(data.Index)
		if idx < 0 || idx >= len(texts) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", ingestion.ErrEmbeddingFailed, idx)
		}
		vector := make([]float32, len(data.Embedding))
		for i, v := range data.Embedding {
			vector[i] = float32(v)
		}
		embeddings[idx] = vector
	}
	for i, vector := range embeddings {
		if vector == nil {
			return nil, fmt.Errorf("%w: missing embedding for input %d", ingestion.ErrEmbeddingFailed, i)
		}
	}

	return embeddings, nil
}

// Embed は単一テキストの Embedding を生成する
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// ModelName はモデル名を返す
func (e *Embedder) ModelName() string {
	return e.model
}

// インターフェース実装の確認
var (
	_ ingestion.Embedder = (*Embedder)(nil)
	_ ask.Embedder       = (*Embedder)(nil)
)
