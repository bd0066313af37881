package trivia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/domain"
	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestClient_FetchQuestion(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectedError bool
	}{
		{
			name:   "valid question",
			status: http.StatusOK,
			body: `{"response_code":0,"results":[{
				"category":"Science &amp; Nature",
				"difficulty":"easy",
				"question":"What is H2O?",
				"correct_answer":"Water",
				"incorrect_answers":["Salt","Sugar","Oxygen"]}]}`,
			expectedError: false,
		},
		{
			name:          "non-zero response code",
			status:        http.StatusOK,
			body:          `{"response_code":1,"results":[]}`,
			expectedError: true,
		},
		{
			name:          "empty results",
			status:        http.StatusOK,
			body:          `{"response_code":0,"results":[]}`,
			expectedError: true,
		},
		{
			name:   "too few incorrect answers",
			status: http.StatusOK,
			body: `{"response_code":0,"results":[{
				"question":"Q","correct_answer":"A",
				"incorrect_answers":["B","C"]}]}`,
			expectedError: true,
		},
		{
			name:   "missing correct answer",
			status: http.StatusOK,
			body: `{"response_code":0,"results":[{
				"question":"Q","correct_answer":"",
				"incorrect_answers":["B","C","D"]}]}`,
			expectedError: true,
		},
		{
			name:          "server error",
			status:        http.StatusInternalServerError,
			body:          "",
			expectedError: true,
		},
		{
			name:          "invalid json",
			status:        http.StatusOK,
			body:          "not json",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api.php", r.URL.Path)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, 5*time.Second, testutil.NewTestLogger())

			q, err := client.FetchQuestion(context.Background(), 17, domain.DifficultyEasy)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, q)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, q)
				assert.NoError(t, q.Validate())
			}
		})
	}
}

func TestClient_FetchQuestion_QueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"response_code":0,"results":[{
			"question":"Q","correct_answer":"A",
			"incorrect_answers":["B","C","D"]}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, testutil.NewTestLogger())

	_, err := client.FetchQuestion(context.Background(), 22, domain.DifficultyHard)
	assert.NoError(t, err)
	assert.Contains(t, gotQuery, "amount=1")
	assert.Contains(t, gotQuery, "type=multiple")
	assert.Contains(t, gotQuery, "category=22")
	assert.Contains(t, gotQuery, "difficulty=hard")
}

func TestBuildQuestion_UnescapesAndShuffles(t *testing.T) {
	res := apiResult{
		Category:         "Science &amp; Nature",
		Difficulty:       "medium",
		Question:         "Which gas is known as &quot;laughing gas&quot;?",
		CorrectAnswer:    "Nitrous oxide",
		IncorrectAnswers: []string{"Carbon dioxide", "Methane", "Ozone"},
	}

	q, err := buildQuestion(res)
	assert.NoError(t, err)
	assert.Equal(t, `Which gas is known as "laughing gas"?`, q.Prompt)
	assert.Equal(t, "Science & Nature", q.Category)
	assert.Len(t, q.Options, domain.OptionCount)

	// CorrectIndex must track the correct answer through the shuffle
	assert.Equal(t, "Nitrous oxide", q.CorrectAnswer())
	assert.Contains(t, q.Options, "Carbon dioxide")
	assert.Contains(t, q.Options, "Methane")
	assert.Contains(t, q.Options, "Ozone")
}

func TestClient_FetchQuestion_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 50*time.Millisecond, testutil.NewTestLogger())

	q, err := client.FetchQuestion(context.Background(), 0, "")
	assert.Error(t, err)
	assert.Nil(t, q)
}
