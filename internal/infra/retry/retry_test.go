package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() Policy {
	return Policy{
		MaxRetries:  5,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  4 * time.Millisecond,
	}
}

// TestDoExhaustsRetryBudget は全試行が失敗した場合にちょうど MaxRetries+1 回実行されることを確認します
func TestDoExhaustsRetryBudget(t *testing.T) {
	errRemote := errors.New("remote failure")

	attempts := 0
	err := testPolicy().Do(context.Background(), func() error {
		attempts++
		return errRemote
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errRemote)
	assert.Equal(t, 6, attempts, "初回 + 5リトライ")
}

// TestDoStopsAfterSuccess はk回目で成功した場合にそれ以上再試行しないことを確認します
func TestDoStopsAfterSuccess(t *testing.T) {
	tests := []struct {
		name      string
		succeedOn int
	}{
		{name: "初回で成功", succeedOn: 1},
		{name: "3回目で成功", succeedOn: 3},
		{name: "最終試行で成功", succeedOn: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := testPolicy().Do(context.Background(), func() error {
				attempts++
				if attempts < tt.succeedOn {
					return errors.New("not yet")
				}
				return nil
			})

			require.NoError(t, err)
			assert.Equal(t, tt.succeedOn, attempts)
		})
	}
}

// TestDoRespectsContextCancellation はキャンセル済みコンテキストで待機が中断されることを確認します
func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := testPolicy().Do(ctx, func() error {
		attempts++
		cancel()
		return errors.New("remote failure")
	})

	require.Error(t, err)
	assert.LessOrEqual(t, attempts, 2, "キャンセル後は再試行しない")
}
