// questions/openai.go
package questions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"show-do-ingles/models"
)

const systemPrompt = "Você é o apresentador de um quiz de inglês para brasileiros. Responda somente com o JSON pedido."

// OpenAIConfig configures the OpenAI backed generator.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// OpenAI asks a chat completion model for a question using structured output.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI builds the generator. Retries are disabled: a failed fetch is
// reported to the player, who decides whether to retry.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("openai model is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		opts = append(opts, option.WithBaseURL(base))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Generate returns a question for level.
func (g *OpenAI) Generate(ctx context.Context, level int) (models.Question, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(Prompt(level)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "english_quiz_question",
					Description: openai.String("Pergunta de múltipla escolha com quatro opções"),
					Schema:      Schema(),
					Strict:      openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return models.Question{}, fmt.Errorf("openai chat completion level %d: %w", level, err)
	}
	if len(completion.Choices) == 0 {
		return models.Question{}, invalid(errors.New("completion has no choices"))
	}
	return Decode(completion.Choices[0].Message.Content)
}
