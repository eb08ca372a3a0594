package ask

import "context"

// Match はベクトル検索でヒットしたレコード
type Match struct {
	Chunk  string  // チャンク原文（metadataのchunk）
	Source string  // ソースドキュメントのパス
	Score  float32 // 類似度スコア
}

// CompletionRequest はチャット補完への要求
type CompletionRequest struct {
	System      string // systemロールのメッセージ
	Prompt      string // userロールのメッセージ
	Temperature float64
}

// Embedder は質問文をベクトルに変換するインターフェース
// テスト時のモック用に消費者側で定義
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Retriever はベクトルインデックスから近傍レコードを取得するインターフェース
type Retriever interface {
	// Query はベクトルに近い順で高々 topK 件のマッチを返す
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}

// Completer はチャット補完サービスのインターフェース
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
