package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// VectorID はチャンクの決定的な識別子を返す
//
// (ソースパス, 序数, チャンク長, チャンク内容) のSHA-256ダイジェストを
// 16進文字列にしたもので、同じ入力からは常に同じIDが得られる
// これにより同一ドキュメントの再取り込みはインデックス上の同じレコードを
// 上書きし、重複レコードを作らない
// 衝突は明示的には解決されず、起きた場合は先のレコードが黙って上書きされる
func VectorID(source string, ordinal int, chunk string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x1f%d\x1f%d\x1f", source, ordinal, len(chunk))
	io.WriteString(h, chunk)
	return hex.EncodeToString(h.Sum(nil))
}
