package titler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"personal-diary/config"
	"personal-diary/parser"
)

// ErrNotConfigured is returned when the Gemini API key is absent. The key is
// checked at call time, not at process start, so the rest of the application
// works without it.
var ErrNotConfigured = errors.New("GEMINI_API_KEY environment variable is not set")

// ErrEmptyContent is returned when the post content has no visible text.
var ErrEmptyContent = errors.New("content is empty")

const promptTemplate = `Based on the following diary post content, create a concise and engaging title (maximum 8 words):

%s

Provide only the title, nothing else.`

// Generator produces a suggested title for diary content.
type Generator interface {
	GenerateTitle(ctx context.Context, content string) (string, error)
}

// Client generates titles through the Gemini API.
type Client struct{}

var _ Generator = (*Client)(nil)

func New() *Client {
	return &Client{}
}

// GenerateTitle extracts the readable text from the content and asks the
// model for a short title. Errors from the API are propagated untouched;
// there is no retry.
func (c *Client) GenerateTitle(ctx context.Context, content string) (string, error) {
	plain, err := parser.ArticleText(content)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(plain) == "" {
		return "", ErrEmptyContent
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(
		ctx,
		config.GetConfig().GeminiModel,
		genai.Text(fmt.Sprintf(promptTemplate, plain)),
		nil,
	)
	if err != nil {
		return "", err
	}

	return CleanTitle(result.Text()), nil
}

// CleanTitle normalizes a model response into a single-line title:
// surrounding whitespace and quotes go, only the first line survives.
func CleanTitle(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
