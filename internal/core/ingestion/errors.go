package ingestion

import "errors"

var (
	// ErrInvalidChunkSize はチャンクサイズが正でない場合に返されます
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrInvalidChunkOverlap はオーバーラップがチャンクサイズ以上の場合に返されます
	ErrInvalidChunkOverlap = errors.New("chunk overlap must be smaller than chunk size")

	// ErrInvalidBatchSize はバッチサイズが正でない場合に返されます
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrPathNotFound は取り込み対象のパスが存在しない場合に返されます
	ErrPathNotFound = errors.New("document path does not exist")

	// ErrNoDocuments は取り込み可能なドキュメントが1件も見つからない場合に返されます
	ErrNoDocuments = errors.New("no ingestible documents found")

	// ErrEmbeddingFailed はリトライ回数を使い切ってもEmbedding生成に失敗した場合に返されます
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrUpsertFailed はリトライ回数を使い切ってもベクトルのupsertに失敗した場合に返されます
	ErrUpsertFailed = errors.New("vector upsert failed")
)
