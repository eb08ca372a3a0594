package ingestion

import "iter"

// Batches は任意のシーケンスを最大 batchSize 件ずつのグループにまとめる
// 遅延シーケンスを返す
//
// 入力の順序は保持され、最後のグループだけ batchSize より小さくなりうる
// 空のシーケンスからはグループを1つも生成しない
// 入力が遅延生成でも全体が実体化されることはなく、
// 常に高々 batchSize 件だけがメモリに載る
func Batches[T any](seq iter.Seq[T], batchSize int) iter.Seq[[]T] {
	if batchSize < 1 {
		batchSize = 1
	}

	return func(yield func([]T) bool) {
		batch := make([]T, 0, batchSize)
		for item := range seq {
			batch = append(batch, item)
			if len(batch) == batchSize {
				if !yield(batch) {
					return
				}
				batch = make([]T, 0, batchSize)
			}
		}
		if len(batch) > 0 {
			yield(batch)
		}
	}
}
