package ingestion

import (
	"iter"
	"strings"
)

// ValidateChunking はチャンク分割パラメータを検証する
// チャンクごとではなく呼び出しごとに一度だけ実行する
func ValidateChunking(chunkSize, chunkOverlap int) error {
	if chunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return ErrInvalidChunkOverlap
	}
	return nil
}

// ChunkText はテキストをオーバーラップ付きの固定幅ウィンドウに分割する遅延シーケンスを返す
//
// カーソルを0から始め、[cursor, min(cursor+chunkSize, len)) の部分文字列を
// 前後の空白をトリムして生成する（トリム後に空になったチャンクは出力しない）
// ウィンドウがテキスト末尾に到達したら終了し、それ以外は
// カーソルを max(1, chunkSize-chunkOverlap) だけ進める
// 強制的に1以上進めることで、どのようなパラメータでも停止が保証される
//
// 返るシーケンスは先頭から再走査可能で、同一入力に対して常に同一の出力を生成する
// 一度に保持されるのは現在のウィンドウのみなので、巨大なドキュメントでも
// チャンク全体を同時にメモリへ載せることはない
func ChunkText(text string, chunkSize, chunkOverlap int) (iter.Seq[string], error) {
	if err := ValidateChunking(chunkSize, chunkOverlap); err != nil {
		return nil, err
	}

	// 文字（rune）単位で分割する。バイト単位ではマルチバイト文字の途中で
	// ウィンドウが切れてしまう
	runes := []rune(text)

	step := chunkSize - chunkOverlap
	if step < 1 {
		step = 1
	}

	seq := func(yield func(string) bool) {
		for cursor := 0; cursor < len(runes); cursor += step {
			end := cursor + chunkSize
			last := false
			if end >= len(runes) {
				end = len(runes)
				last = true
			}

			chunk := strings.TrimSpace(string(runes[cursor:end]))
			if chunk != "" {
				if !yield(chunk) {
					return
				}
			}

			if last {
				return
			}
		}
	}

	return seq, nil
}
