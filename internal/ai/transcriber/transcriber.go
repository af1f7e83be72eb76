package transcriber

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

const defaultModel = "gpt-4o"

const systemPrompt = `You are a precise OCR engine for resumes. Transcribe ALL visible text of the page image as plain text.`

const userPrompt = `Transcribe this resume page.

IMPORTANT:
- Keep the reading order of the page (top to bottom, left column before right column)
- Put each section heading and each bullet on its own line
- Separate sections with a blank line
- Do not summarize, translate or correct the text
- Return ONLY the transcription, no explanatory text`

// Transcriber turns scanned resume pages into text using OpenAI Vision
type Transcriber struct {
	client *openai.Client
	model  string
}

func NewTranscriber(apiKey, model string, opts ...option.RequestOption) *Transcriber {
	if model == "" {
		model = defaultModel
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	return &Transcriber{
		client: &client,
		model:  model,
	}
}

// TranscribePage returns the text of a single JPEG page image
func (t *Transcriber) TranscribePage(ctx context.Context, imageData []byte) (string, error) {
	if len(imageData) == 0 {
		return "", errors.New("empty page image")
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageData)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						{
							OfText: &openai.ChatCompletionContentPartTextParam{
								Type: constant.Text("text"),
								Text: userPrompt,
							},
						},
						{
							OfImageURL: &openai.ChatCompletionContentPartImageParam{
								Type: constant.ImageURL("image_url"),
								ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
									URL:    dataURL,
									Detail: "high", // small print on resumes
								},
							},
						},
					},
				},
			},
		},
	}

	completion, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       openai.ChatModel(t.model),
		Temperature: openai.Float(0),
		MaxTokens:   openai.Int(4000),
	})
	if err != nil {
		return "", fmt.Errorf("openai vision api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no response from openai")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
