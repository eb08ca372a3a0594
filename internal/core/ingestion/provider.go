package ingestion

import "context"

// Embedder はテキスト列をベクトル列に変換するインターフェース
// テスト時のモック用に消費者側で定義
type Embedder interface {
	// EmbedBatch は入力と同じ長さ・同じ順序のベクトル列を返す
	// 一時的な失敗のリトライは実装側の責務で、枯渇時は ErrEmbeddingFailed を返す
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName は使用するEmbeddingモデル名を返す
	ModelName() string
}

// VectorStore はベクトルインデックスへの書き込みインターフェース
// upsertはIDによる作成または置換で、同一呼び出し内の原子性はインデックス側に委ねる
type VectorStore interface {
	// Upsert はレコード群を名前空間へ書き込む
	// リトライ枯渇時は ErrUpsertFailed を返す
	Upsert(ctx context.Context, records []Record) error
}
