package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jinford/rag-chatbot/internal/core/stats"
)

// StatsAction はインデックスの統計情報をJSONファイルへ書き出すコマンドのアクション
func StatsAction(ctx context.Context, cmd *cli.Command) error {
	output := cmd.String("output")
	envFile := cmd.String("env")

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}

	exporter := stats.NewExporter(appCtx.Store, appCtx.Logger)
	if err := exporter.Export(ctx, output); err != nil {
		appCtx.Logger.Error("統計情報の書き出しに失敗しました", "error", err)
		return err
	}

	appCtx.Logger.Info("統計情報を書き出しました", "output", output)
	return nil
}
