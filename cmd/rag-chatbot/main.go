package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jinford/rag-chatbot/cmd/rag-chatbot/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	app := &cli.Command{
		Name:  "rag-chatbot",
		Usage: "ドキュメントをベクトルインデックスへ取り込み、文脈に基づいて回答するRAGチャットボット",
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "指定パス配下のテキストドキュメントをインデックスへ取り込む",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "1回の埋め込み・書き込みで処理するチャンク数",
						Value: 64,
					},
				},
				Action: commands.IngestAction,
			},
			{
				Name:      "chat",
				Usage:     "インデックスを検索して質問に回答する",
				ArgsUsage: "<question>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
				},
				Action: commands.ChatAction,
			},
			{
				Name:  "stats",
				Usage: "インデックスの統計情報をJSONファイルへ書き出す",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "出力ファイルパス",
						Value: "pinecone_stats.json",
					},
				},
				Action: commands.StatsAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
