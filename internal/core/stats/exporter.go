// Package stats はベクトルインデックスの統計情報をファイルへ書き出します
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// IndexStats はインデックスの統計情報のまとめ
type IndexStats struct {
	Dimension        uint32            `json:"dimension"`
	TotalVectorCount uint32            `json:"total_vector_count"`
	IndexFullness    float32           `json:"index_fullness"`
	Namespaces       map[string]uint32 `json:"namespaces"` // 名前空間ごとのベクトル数
}

// Source は統計情報の取得元インターフェース
// テスト時のモック用に消費者側で定義
type Source interface {
	Stats(ctx context.Context) (*IndexStats, error)
}

// Exporter はインデックス統計をJSONファイルへ書き出す
// 取り込みパイプラインと違い、ここでの失敗は封じ込めずそのまま呼び出し元へ返す
type Exporter struct {
	source Source
	logger *slog.Logger
}

// NewExporter は新しい Exporter を作成する
func NewExporter(source Source, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		source: source,
		logger: logger,
	}
}

// Export は統計情報を取得し、インデント付きJSONとして outputPath へ書き込む
func (e *Exporter) Export(ctx context.Context, outputPath string) error {
	stats, err := e.source.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch index stats: %w", err)
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index stats: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}

	e.logger.Info("統計情報を書き出し",
		"output", outputPath,
		"totalVectors", stats.TotalVectorCount,
		"namespaces", len(stats.Namespaces),
	)

	return nil
}
