package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"jobAgent/internal/sanitizer"

	"github.com/sashabaranov/go-openai"
)

const maxAnswerLen = 50

type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	sanitizer   *sanitizer.DataSanitizer
	rateLimiter *RateLimiter
	backoff     Backoff
}

func NewClient(apiKey, model string, maxTokens int) *Client {
	return NewClientWithPolicy(apiKey, model, maxTokens, NewRateLimiter(15), DefaultBackoff())
}

func NewClientWithPolicy(apiKey, model string, maxTokens int, limiter *RateLimiter, backoff Backoff) *Client {
	return &Client{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		sanitizer:   sanitizer.New(),
		rateLimiter: limiter,
		backoff:     backoff,
	}
}

func (c *Client) chatCompletion(ctx context.Context, prompt string) (string, error) {
	if err := c.rateLimiter.AllowRequest(ctx); err != nil {
		return "", err
	}

	var content string
	err := c.backoff.Retry(ctx, func() error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:     c.model,
			MaxTokens: c.maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("пустой ответ от модели")
		}
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}

	return content, nil
}

// GenerateAnswer запрашивает у модели короткий ответ на вопрос анкеты.
// Ответ обрезается до 50 символов, чтобы влезать в поля ввода.
func (c *Client) GenerateAnswer(ctx context.Context, question, profileSummary string) (string, error) {
	prompt := fmt.Sprintf(
		"Candidate profile:\n%s\n\nJob application question: %s\n\n"+
			"Provide a concise, direct answer (1-5 words max). If it is a yes/no question, answer Yes or No.",
		profileSummary, c.sanitizer.Sanitize(question),
	)

	answer, err := c.chatCompletion(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("генерация ответа: %w", err)
	}

	runes := []rune(answer)
	if len(runes) > maxAnswerLen {
		answer = string(runes[:maxAnswerLen])
	}

	return answer, nil
}

var scorePattern = regexp.MustCompile(`\d{1,3}`)

// ScoreJob оценивает соответствие вакансии профилю кандидата (0-100).
func (c *Client) ScoreJob(ctx context.Context, title, description, profileSummary string) (int, error) {
	prompt := fmt.Sprintf(
		"Candidate profile:\n%s\n\nJob posting:\nTitle: %s\nDescription: %s\n\n"+
			"Rate how well this job matches the candidate on a scale of 0 to 100. "+
			"Respond with the number only.",
		profileSummary, title, description,
	)

	content, err := c.chatCompletion(ctx, prompt)
	if err != nil {
		return 0, fmt.Errorf("оценка вакансии: %w", err)
	}

	match := scorePattern.FindString(content)
	if match == "" {
		return 0, fmt.Errorf("модель не вернула число: %q", content)
	}

	score, err := strconv.Atoi(match)
	if err != nil {
		return 0, err
	}
	if score > 100 {
		score = 100
	}

	return score, nil
}
