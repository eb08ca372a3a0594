package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// DefaultBatchPause はバッチ成功後の待機時間
	// リモートサービスのレートリミットに対してリクエスト頻度を均すための固定値
	DefaultBatchPause = 300 * time.Millisecond

	// DefaultFailurePause はバッチ失敗後、次のバッチへ進む前の追加待機時間
	DefaultFailurePause = 1 * time.Second
)

// Service はドキュメント取り込みのユースケースを提供する
//
// 処理は単一スレッドの逐次実行で、ドキュメント1件・バッチ1件ずつ進む
// リモート呼び出し中はパイプライン全体がブロックする設計上の割り切りであり、
// 並行バッチやファイル並列は行わない
type Service struct {
	embedder     Embedder
	store        VectorStore
	chunkSize    int
	chunkOverlap int
	batchPause   time.Duration
	failurePause time.Duration
	logger       *slog.Logger

	// テスト差し替え用
	readFile func(string) ([]byte, error)
}

type serviceOptions struct {
	batchPause   time.Duration
	failurePause time.Duration
	logger       *slog.Logger
}

// ServiceOption は Service のオプション設定
type ServiceOption func(*serviceOptions)

// WithLogger は Service にロガーを設定する
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithBatchPause はバッチ成功後の待機時間を上書きする
func WithBatchPause(d time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.batchPause = d
	}
}

// WithFailurePause はバッチ失敗後の待機時間を上書きする
func WithFailurePause(d time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.failurePause = d
	}
}

// NewService は新しい Service を作成する
// チャンク分割パラメータはここで一度だけ検証され、
// 不正な場合はリモート呼び出しを行う前に設定エラーとして返る
func NewService(embedder Embedder, store VectorStore, chunkSize, chunkOverlap int, opts ...ServiceOption) (*Service, error) {
	if err := ValidateChunking(chunkSize, chunkOverlap); err != nil {
		return nil, err
	}

	options := serviceOptions{
		batchPause:   DefaultBatchPause,
		failurePause: DefaultFailurePause,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	return &Service{
		embedder:     embedder,
		store:        store,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		batchPause:   options.batchPause,
		failurePause: options.failurePause,
		logger:       options.logger,
		readFile:     os.ReadFile,
	}, nil
}

// Ingest はルートパス配下のドキュメントを走査し、チャンク分割・Embedding生成・
// ベクトルインデックスへのupsertを行う
//
// 失敗の封じ込め方針:
//   - ルートが存在しない、または対象ドキュメントが0件の場合は実行全体が失敗する
//   - 個々のファイルの読み取り失敗はそのファイルのスキップにとどまる
//   - 個々のバッチの失敗（リトライ枯渇後）はそのバッチの破棄にとどまる
//
// 破棄されたバッチのレコードは書き込まれないままになるが、ベクトルIDが
// 決定的なため、同じ設定で再実行すれば安全に補完できる
func (s *Service) Ingest(ctx context.Context, root string, batchSize int) (*Summary, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}

	runID := uuid.New()
	startTime := time.Now()

	paths, err := ScanDocuments(root)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDocuments, root)
	}

	logger := s.logger.With("runID", runID)
	logger.Info("取り込みを開始",
		"root", root,
		"files", len(paths),
		"batchSize", batchSize,
		"model", s.embedder.ModelName(),
	)

	summary := &Summary{
		RunID:      runID,
		FilesFound: len(paths),
	}

	for _, path := range paths {
		result := s.ingestFile(ctx, logger, path, batchSize)
		summary.Files = append(summary.Files, result)

		switch result.Status {
		case StatusSucceeded:
			summary.FilesIngested++
		case StatusSkipped:
			summary.FilesSkipped++
		}
		summary.ChunksUpserted += result.ChunksUpserted
		summary.BatchesUpserted += result.BatchesUpserted
		summary.BatchesFailed += result.BatchesFailed

		if ctx.Err() != nil {
			summary.Duration = time.Since(startTime)
			return summary, ctx.Err()
		}
	}

	summary.Duration = time.Since(startTime)

	logger.Info("取り込みが完了",
		"filesIngested", summary.FilesIngested,
		"filesSkipped", summary.FilesSkipped,
		"batchesUpserted", summary.BatchesUpserted,
		"batchesFailed", summary.BatchesFailed,
		"chunksUpserted", summary.ChunksUpserted,
		"duration", summary.Duration,
	)

	return summary, nil
}

// ingestFile はファイル1件をチャンク分割してバッチ単位で埋め込み・upsertする
// ファイルのテキストとチャンクバッファはこの関数のスコープに閉じており、
// 次のファイルへ進む前に解放される（大規模コーパスでのピークメモリ対策）
func (s *Service) ingestFile(ctx context.Context, logger *slog.Logger, path string, batchSize int) FileResult {
	raw, err := s.readFile(path)
	if err != nil {
		logger.Warn("ファイルを読み取れないためスキップ", "path", path, "error", err)
		return FileResult{Path: path, Status: StatusSkipped, Err: err}
	}

	// デコードは寛容に行う: 不正なバイト列は置換文字に差し替え、致命的エラーにしない
	doc := Document{
		Path:    path,
		Content: strings.ToValidUTF8(string(raw), string(utf8.RuneError)),
		Size:    int64(len(raw)),
	}
	raw = nil

	// NewService で検証済みのパラメータなのでここでは失敗しない
	chunks, err := ChunkText(doc.Content, s.chunkSize, s.chunkOverlap)
	if err != nil {
		logger.Warn("チャンク分割に失敗したためスキップ", "path", path, "error", err)
		return FileResult{Path: path, Status: StatusSkipped, Err: err}
	}

	result := FileResult{Path: path, Status: StatusSucceeded}

	// チャンクは遅延シーケンスから引き出され、一度に高々 batchSize 件しか実体化しない
	batchIdx := 0
	ordinal := 0
	for batch := range Batches(chunks, batchSize) {
		batchIdx++

		if err := s.processBatch(ctx, path, ordinal, batch); err != nil {
			// バッチ失敗はこのバッチの破棄にとどめ、同一ファイルの次のバッチへ進む
			logger.Error("バッチの処理に失敗",
				"path", path,
				"batch", batchIdx,
				"chunks", len(batch),
				"error", err,
			)
			result.BatchesFailed++
			s.pause(ctx, s.failurePause)
		} else {
			logger.Info("バッチをupsert",
				"path", path,
				"batch", batchIdx,
				"chunks", len(batch),
			)
			result.BatchesUpserted++
			result.ChunksUpserted += len(batch)
			s.pause(ctx, s.batchPause)
		}

		ordinal += len(batch)

		if ctx.Err() != nil {
			break
		}
	}

	result.Chunks = ordinal
	logger.Info("ファイルの処理が完了",
		"path", path,
		"sizeBytes", doc.Size,
		"chunks", result.Chunks,
		"batches", batchIdx,
		"batchesFailed", result.BatchesFailed,
	)

	return result
}

// processBatch はバッチ1件のEmbedding生成とupsertを行う
// upsertはバッチのEmbeddingが全件そろってからのみ実行され、部分upsertは発生しない
func (s *Service) processBatch(ctx context.Context, path string, startOrdinal int, batch []string) error {
	vectors, err := s.embedder.EmbedBatch(ctx, batch)
	if err != nil {
		return err
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(batch))
	}

	// i番目のEmbeddingはi番目のチャンクに対応する（順序はEmbedderの契約で保証）
	records := make([]Record, len(batch))
	for i, chunk := range batch {
		records[i] = Record{
			ID:     VectorID(path, startOrdinal+i, chunk),
			Values: vectors[i],
			Metadata: RecordMetadata{
				Source: path,
				Chunk:  chunk,
			},
		}
	}

	return s.store.Upsert(ctx, records)
}

// pause はコンテキストのキャンセルを尊重しつつ待機する
func (s *Service) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
