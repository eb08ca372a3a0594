package ingestion

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVectorIDStability は同一入力から常に同一のIDが得られることを確認します
func TestVectorIDStability(t *testing.T) {
	id1 := VectorID("docs/readme.md", 3, "hello world")
	id2 := VectorID("docs/readme.md", 3, "hello world")

	assert.Equal(t, id1, id2)

	// 固定長の16進ダイジェスト（SHA-256）
	assert.Len(t, id1, 64)
	_, err := hex.DecodeString(id1)
	require.NoError(t, err)
}

// TestVectorIDSensitivity は入力のいずれかを変えるとIDが変わることを確認します
func TestVectorIDSensitivity(t *testing.T) {
	base := VectorID("docs/readme.md", 3, "hello world")

	assert.NotEqual(t, base, VectorID("docs/other.md", 3, "hello world"), "ソースパスの違い")
	assert.NotEqual(t, base, VectorID("docs/readme.md", 4, "hello world"), "序数の違い")
	assert.NotEqual(t, base, VectorID("docs/readme.md", 3, "hello earth"), "内容の違い（同じ長さ）")
}

// TestVectorIDNoAmbiguity は境界の位置が異なる入力同士が同じダイジェストにならないことを確認します
func TestVectorIDNoAmbiguity(t *testing.T) {
	// 区切りなしで連結すると同一になりうる組み合わせ
	a := VectorID("ab", 1, "c")
	b := VectorID("a", 1, "bc")
	assert.NotEqual(t, a, b)
}
