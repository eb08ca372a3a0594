// Package retry は外部サービス呼び出し共通のリトライポリシーを提供します
//
// 一時的な失敗と恒久的な失敗を区別せず、上限回数まで指数バックオフで
// 再試行した後に最後のエラーをそのまま返します
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// MaxRetries は初回失敗後の最大リトライ回数
	MaxRetries = 5

	// BaseBackoff はExponential Backoffの基底時間
	BaseBackoff = 1 * time.Second

	// MaxBackoff はExponential Backoffの最大待機時間
	MaxBackoff = 30 * time.Second
)

// Policy はリトライ回数とバックオフ時間を定めたポリシー
type Policy struct {
	MaxRetries  uint64
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// DefaultPolicy はデフォルトのリトライポリシーを返す
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:  MaxRetries,
		BaseBackoff: BaseBackoff,
		MaxBackoff:  MaxBackoff,
	}
}

// Do は op を実行し、失敗した場合は 2^attempt 倍の待機を挟んで再試行する
// 待機時間は MaxBackoff で頭打ちになる
// リトライ回数を使い切ると最後のエラーを返す
// コンテキストのキャンセルは待機を中断し ctx.Err() を返す
func (p Policy) Do(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = p.MaxBackoff
	b.MaxElapsedTime = 0 // 回数のみで打ち切る

	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx))
}
