package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jinford/rag-chatbot/internal/core/ingestion"
)

// IngestAction は指定パス配下のドキュメントをインデックスへ取り込むコマンドのアクション
func IngestAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("取り込み対象のパスを指定してください")
	}
	batchSize := int(cmd.Int("batch-size"))
	envFile := cmd.String("env")

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}

	svc, err := ingestion.NewService(
		appCtx.Embedder,
		appCtx.Store,
		appCtx.Config.ChunkSize,
		appCtx.Config.ChunkOverlap,
		ingestion.WithLogger(appCtx.Logger),
	)
	if err != nil {
		return err
	}

	summary, err := svc.Ingest(ctx, path, batchSize)
	if err != nil {
		appCtx.Logger.Error("取り込みに失敗しました", "error", err)
		return err
	}

	appCtx.Logger.Info("取り込みが完了しました",
		"runID", summary.RunID,
		"filesFound", summary.FilesFound,
		"filesIngested", summary.FilesIngested,
		"filesSkipped", summary.FilesSkipped,
		"chunksUpserted", summary.ChunksUpserted,
		"batchesUpserted", summary.BatchesUpserted,
		"batchesFailed", summary.BatchesFailed,
		"duration", summary.Duration,
	)

	if summary.BatchesFailed > 0 {
		appCtx.Logger.Warn("一部のバッチは書き込みに失敗しました",
			"batchesFailed", summary.BatchesFailed,
		)
	}

	return nil
}
