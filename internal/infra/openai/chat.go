package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/jinford/rag-chatbot/internal/core/ask"
	"github.com/jinford/rag-chatbot/internal/infra/retry"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// DefaultChatModel はモデル未指定時のデフォルトモデル
	DefaultChatModel = "gpt-4o-mini"

	// DefaultChatTimeout はチャット補完1回あたりのタイムアウト
	DefaultChatTimeout = 60 * time.Second
)

// ChatClient は OpenAI API を使用したチャット補完クライアント
type ChatClient struct {
	client  openai.Client
	model   string
	timeout time.Duration
	policy  retry.Policy
}

type chatOptions struct {
	model   string
	timeout time.Duration
	policy  retry.Policy
	reqOpts []option.RequestOption
}

// ChatOption は ChatClient のオプション設定
type ChatOption func(*chatOptions)

// WithChatModel はモデル名を上書きする
func WithChatModel(model string) ChatOption {
	return func(o *chatOptions) {
		o.model = model
	}
}

// WithChatTimeout はタイムアウトを上書きする
func WithChatTimeout(timeout time.Duration) ChatOption {
	return func(o *chatOptions) {
		o.timeout = timeout
	}
}

// WithChatRetryPolicy はリトライポリシーを上書きする
func WithChatRetryPolicy(policy retry.Policy) ChatOption {
	return func(o *chatOptions) {
		o.policy = policy
	}
}

// WithChatRequestOptions はSDKへ渡す追加オプションを設定する
func WithChatRequestOptions(opts ...option.RequestOption) ChatOption {
	return func(o *chatOptions) {
		o.reqOpts = append(o.reqOpts, opts...)
	}
}

// NewChatClient は新しい ChatClient を作成する
func NewChatClient(apiKey string, opts ...ChatOption) *ChatClient {
	options := chatOptions{
		model:   DefaultChatModel,
		timeout: DefaultChatTimeout,
		policy:  retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, options.reqOpts...)

	return &ChatClient{
		client:  openai.NewClient(reqOpts...),
		model:   options.model,
		timeout: options.timeout,
		policy:  options.policy,
	}
}

// Complete はロール付きメッセージ列からテキストを生成する
func (c *ChatClient) Complete(ctx context.Context, req ask.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}

	var completion *openai.ChatCompletion
	err := c.policy.Do(ctx, func() error {
		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return err
		}
		completion = resp
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return completion.Choices[0].Message.Content, nil
}

// ModelName はモデル名を返す
func (c *ChatClient) ModelName() string {
	return c.model
}

// インターフェース実装の確認
var _ ask.Completer = (*ChatClient)(nil)
