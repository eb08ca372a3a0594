package ask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBuildPrompt はコンテキストの有無によるプロンプトの組み立てを確認します
func TestBuildPrompt(t *testing.T) {
	t.Run("コンテキストあり", func(t *testing.T) {
		got := BuildPrompt("What is Go?", []string{"Go is a programming language.", "Go was released in 2009."})

		want := "Use the following context to answer the question.\n" +
			"If the answer is not contained within the context, say you do not know.\n" +
			"Context:\n" +
			"Go is a programming language.\n\nGo was released in 2009.\n\n" +
			"Question: What is Go?"
		assert.Equal(t, want, got)
	})

	t.Run("コンテキストなしの場合は質問をそのまま返す", func(t *testing.T) {
		assert.Equal(t, "What is Go?", BuildPrompt("What is Go?", nil))
	})
}
