package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/domain"

	"go.uber.org/zap"
)

// Client fetches multiple-choice questions from the Open Trivia Database.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

// NewClient creates a new Open Trivia DB client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type apiResponse struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// FetchQuestion requests one multiple-choice question for the given category
// and difficulty. The payload is validated and HTML-unescaped, and the answer
// options are shuffled before the question is returned.
func (c *Client) FetchQuestion(ctx context.Context, categoryID int, difficulty domain.Difficulty) (*domain.Question, error) {
	params := url.Values{}
	params.Set("amount", "1")
	params.Set("type", "multiple")
	if categoryID > 0 {
		params.Set("category", fmt.Sprintf("%d", categoryID))
	}
	if difficulty != "" {
		params.Set("difficulty", string(difficulty))
	}

	reqURL := c.baseURL + "/api.php?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trivia API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trivia API returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode trivia response: %w", err)
	}

	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("trivia API response code %d", payload.ResponseCode)
	}
	if len(payload.Results) != 1 {
		return nil, fmt.Errorf("trivia API returned %d results, want 1", len(payload.Results))
	}

	question, err := buildQuestion(payload.Results[0])
	if err != nil {
		c.logger.Warn("Malformed trivia payload",
			zap.Int("category_id", categoryID),
			zap.String("difficulty", string(difficulty)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("malformed trivia payload: %w", err)
	}

	return question, nil
}

// buildQuestion converts an API result into a domain question: unescapes HTML
// entities and shuffles the correct answer in among the incorrect ones.
func buildQuestion(res apiResult) (*domain.Question, error) {
	if len(res.IncorrectAnswers) != domain.OptionCount-1 {
		return nil, fmt.Errorf("got %d incorrect answers, want %d", len(res.IncorrectAnswers), domain.OptionCount-1)
	}
	if res.CorrectAnswer == "" {
		return nil, fmt.Errorf("missing correct answer")
	}

	options := make([]string, 0, domain.OptionCount)
	options = append(options, html.UnescapeString(res.CorrectAnswer))
	for _, ans := range res.IncorrectAnswers {
		options = append(options, html.UnescapeString(ans))
	}

	correctIdx := 0
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
		switch correctIdx {
		case i:
			correctIdx = j
		case j:
			correctIdx = i
		}
	})

	q := &domain.Question{
		Prompt:       html.UnescapeString(res.Question),
		Options:      options,
		CorrectIndex: correctIdx,
		Category:     html.UnescapeString(res.Category),
		Difficulty:   domain.Difficulty(res.Difficulty),
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}
