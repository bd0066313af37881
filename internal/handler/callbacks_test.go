package handler

import (
	"testing"

	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "ans_1_2",
			expected: "ans_1_2",
		},
		{
			name:     "string with whitespace",
			input:    "  ans_1_2  ",
			expected: "ans_1_2",
		},
		{
			name:     "string with newline",
			input:    "ans\n_1_2",
			expected: "ans_1_2",
		},
		{
			name:     "telebot unique prefix byte",
			input:    "\fcat_9",
			expected: "cat_9",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "diff\x00_easy\x01",
			expected: "diff_easy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseAnswerData(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedSeq    int64
		expectedChoice int
		expectedError  bool
	}{
		{
			name:           "valid data",
			input:          "ans_7_2",
			expectedSeq:    7,
			expectedChoice: 2,
		},
		{
			name:           "large sequence number",
			input:          "ans_123456789_0",
			expectedSeq:    123456789,
			expectedChoice: 0,
		},
		{
			name:          "missing choice",
			input:         "ans_7",
			expectedError: true,
		},
		{
			name:          "non-numeric seq",
			input:         "ans_x_2",
			expectedError: true,
		},
		{
			name:          "non-numeric choice",
			input:         "ans_7_x",
			expectedError: true,
		},
		{
			name:          "empty string",
			input:         "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, choice, err := parseAnswerData(tt.input)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedSeq, seq)
				assert.Equal(t, tt.expectedChoice, choice)
			}
		})
	}
}

func TestQuestionMessage(t *testing.T) {
	q := testutil.NewTestQuestion("What is 2+2?", 1)

	text, markup := questionMessage(q, 5)

	assert.Contains(t, text, "What is 2+2?")
	assert.Contains(t, text, "General Knowledge")

	// One button per option, each carrying the sequence number
	assert.Len(t, markup.InlineKeyboard, 4)
	for i, row := range markup.InlineKeyboard {
		assert.Len(t, row, 1)
		assert.Equal(t, q.Options[i], row[0].Text)
		assert.Contains(t, row[0].Unique, "ans_5_")
	}
}
