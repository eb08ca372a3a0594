package ingestion

import (
	"time"

	"github.com/google/uuid"
)

// Document はファイルシステム上のテキストドキュメントを表す
type Document struct {
	Path    string // ドキュメントのパス（実行内で一意）
	Content string // ドキュメントの内容（不正なUTF-8は置換済み）
	Size    int64  // ドキュメントのサイズ（バイト）
}

// RecordMetadata はベクトルレコードに付与されるメタデータ
type RecordMetadata struct {
	Source string // ソースドキュメントのパス
	Chunk  string // チャンクの原文
}

// Record はベクトルインデックスへ書き込む単位
// IDは(ソースパス, 序数, チャンク内容)から決定的に導出されるため、
// 同一設定での再取り込みは重複を作らず上書きになる
type Record struct {
	ID       string
	Values   []float32
	Metadata RecordMetadata
}

// UnitStatus はファイル・バッチ単位の処理結果の種別
type UnitStatus string

const (
	// StatusSucceeded は処理が完了したことを表す
	StatusSucceeded UnitStatus = "succeeded"
	// StatusSkipped は読み取り失敗等によりスキップされたことを表す
	StatusSkipped UnitStatus = "skipped"
)

// FileResult はファイル1件の処理結果
type FileResult struct {
	Path            string
	Status          UnitStatus
	Chunks          int   // 生成されたチャンク数
	ChunksUpserted  int   // インデックスへ書き込まれたチャンク数
	BatchesUpserted int   // upsertに成功したバッチ数
	BatchesFailed   int   // リトライ枯渇により破棄されたバッチ数
	Err             error // Status == StatusSkipped の原因
}

// Summary は取り込み実行全体の集計結果
// 一部のファイル・バッチが失敗しても実行自体は成功として扱われるため、
// 呼び出し側はこの集計で取りこぼしを検知する
type Summary struct {
	RunID           uuid.UUID
	FilesFound      int
	FilesIngested   int
	FilesSkipped    int
	BatchesUpserted int
	BatchesFailed   int
	ChunksUpserted  int
	Duration        time.Duration
	Files           []FileResult
}
