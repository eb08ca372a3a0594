package ask

import (
	"fmt"
	"strings"
)

// systemMessage は回答生成時に常に与えるsystemロールのメッセージ
const systemMessage = "You are a helpful assistant that answers using the provided context."

// BuildPrompt は検索でヒットしたコンテキストに質問を組み合わせたプロンプトを作る
// コンテキストが1件もない場合は質問をそのまま返す
func BuildPrompt(query string, contexts []string) string {
	if len(contexts) == 0 {
		return query
	}

	joined := strings.Join(contexts, "\n\n")
	return fmt.Sprintf(
		"Use the following context to answer the question.\n"+
			"If the answer is not contained within the context, say you do not know.\n"+
			"Context:\n"+
			"%s\n\n"+
			"Question: %s",
		joined, query,
	)
}
