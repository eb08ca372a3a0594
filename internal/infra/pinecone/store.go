// Package pinecone は Pinecone をベクトルインデックスとして利用するアダプタです
package pinecone

import (
	"context"
	"fmt"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jinford/rag-chatbot/internal/core/ask"
	"github.com/jinford/rag-chatbot/internal/core/ingestion"
	"github.com/jinford/rag-chatbot/internal/core/stats"
	"github.com/jinford/rag-chatbot/internal/infra/retry"
)

// ベクトルレコードのメタデータキー
const (
	metadataSource = "source"
	metadataChunk  = "chunk"
)

// Config は Store の接続設定
type Config struct {
	APIKey    string
	IndexName string
	Host      string // 指定時はインデックス名の解決を省略して直接接続する
	Namespace string
}

// Store は単一の名前空間に束縛されたインデックス接続を保持する
// upsertは共通のリトライポリシーで再試行し、枯渇した場合は
// ingestion.ErrUpsertFailed に最後の原因を包んで返す
type Store struct {
	index  *pinecone.IndexConnection
	policy retry.Policy
}

type storeOptions struct {
	policy retry.Policy
}

// StoreOption は Store のオプション設定
type StoreOption func(*storeOptions)

// WithRetryPolicy はリトライポリシーを上書きする
func WithRetryPolicy(policy retry.Policy) StoreOption {
	return func(o *storeOptions) {
		o.policy = policy
	}
}

// NewStore は新しい Store を作成する
func NewStore(ctx context.Context, cfg Config, opts ...StoreOption) (*Store, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}

	options := storeOptions{
		policy: retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pinecone client: %w", err)
	}

	host := cfg.Host
	if host == "" {
		idx, err := client.DescribeIndex(ctx, cfg.IndexName)
		if err != nil {
			return nil, fmt.Errorf("failed to describe index %q: %w", cfg.IndexName, err)
		}
		host = idx.Host
	}

	index, err := client.Index(pinecone.NewIndexConnParams{
		Host:      host,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to index: %w", err)
	}

	return &Store{
		index:  index,
		policy: options.policy,
	}, nil
}

// Upsert はレコード群をIDによる作成または置換として書き込む
func (s *Store) Upsert(ctx context.Context, records []ingestion.Record) error {
	if len(records) == 0 {
		return nil
	}

	vectors, err := toVectors(records)
	if err != nil {
		return fmt.Errorf("%w: %w", ingestion.ErrUpsertFailed, err)
	}

	err = s.policy.Do(ctx, func() error {
		_, err := s.index.UpsertVectors(ctx, vectors)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ingestion.ErrUpsertFailed, err)
	}

	return nil
}

// Query はベクトルに近い順で高々 topK 件のマッチをメタデータ付きで返す
func (s *Store) Query(ctx context.Context, vector []float32, topK int) ([]ask.Match, error) {
	resp, err := s.index.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}

	return matchesFromResponse(resp), nil
}

// Stats はインデックスの統計情報を取得する
func (s *Store) Stats(ctx context.Context) (*stats.IndexStats, error) {
	resp, err := s.index.DescribeIndexStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index stats: %w", err)
	}

	return statsFromResponse(resp), nil
}

// toVectors はレコードをSDKのベクトル表現に変換する
func toVectors(records []ingestion.Record) ([]*pinecone.Vector, error) {
	vectors := make([]*pinecone.Vector, len(records))
	for i, rec := range records {
		metadata, err := structpb.NewStruct(map[string]any{
			metadataSource: rec.Metadata.Source,
			metadataChunk:  rec.Metadata.Chunk,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build metadata for record %s: %w", rec.ID, err)
		}

		values := rec.Values
		vectors[i] = &pinecone.Vector{
			Id:       rec.ID,
			Values:   &values,
			Metadata: metadata,
		}
	}
	return vectors, nil
}

// matchesFromResponse は検索レスポンスをドメインのマッチ表現に変換する
func matchesFromResponse(resp *pinecone.QueryVectorsResponse) []ask.Match {
	matches := make([]ask.Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if m == nil || m.Vector == nil {
			continue
		}
		match := ask.Match{Score: m.Score}
		if md := m.Vector.Metadata; md != nil {
			fields := md.GetFields()
			if v, ok := fields[metadataChunk]; ok {
				match.Chunk = v.GetStringValue()
			}
			if v, ok := fields[metadataSource]; ok {
				match.Source = v.GetStringValue()
			}
		}
		matches = append(matches, match)
	}
	return matches
}

// statsFromResponse は統計レスポンスをドメインの統計表現に変換する
func statsFromResponse(resp *pinecone.DescribeIndexStatsResponse) *stats.IndexStats {
	out := &stats.IndexStats{
		TotalVectorCount: resp.TotalVectorCount,
		IndexFullness:    resp.IndexFullness,
		Namespaces:       make(map[string]uint32, len(resp.Namespaces)),
	}
	if resp.Dimension != nil {
		out.Dimension = *resp.Dimension
	}
	for name, summary := range resp.Namespaces {
		if summary != nil {
			out.Namespaces[name] = summary.VectorCount
		}
	}
	return out
}

// インターフェース実装の確認
var (
	_ ingestion.VectorStore = (*Store)(nil)
	_ ask.Retriever         = (*Store)(nil)
	_ stats.Source          = (*Store)(nil)
)
