package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jinford/rag-chatbot/internal/core/ask"
)

// ChatAction は質問に対してインデックスを検索し、回答を生成するコマンドのアクション
func ChatAction(ctx context.Context, cmd *cli.Command) error {
	question := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("質問を指定してください")
	}
	envFile := cmd.String("env")

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}

	svc := ask.NewService(
		appCtx.Embedder,
		appCtx.Store,
		appCtx.Chat,
		appCtx.Config.TopK,
		appCtx.Config.Temperature,
		ask.WithLogger(appCtx.Logger),
	)

	answer, err := svc.Ask(ctx, question)
	if err != nil {
		appCtx.Logger.Error("回答の生成に失敗しました", "error", err)
		return err
	}

	fmt.Println(answer)
	return nil
}
