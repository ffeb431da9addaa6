package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"empty", 0, 1},
		{"one word", 1, 1},
		{"exactly one minute", 200, 1},
		{"just over one minute", 201, 2},
		{"three minutes", 600, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.TrimSpace(strings.Repeat("word ", tt.words))
			assert.Equal(t, tt.want, ReadingTime(text))
		})
	}
}

func TestReadingTime_IgnoresRepeatedWhitespace(t *testing.T) {
	assert.Equal(t, 1, ReadingTime("  a \n\n b \t c  "))
}

func TestArticle_ReadingTextFallsBackToSummary(t *testing.T) {
	a := Article{Summary: "short summary", Body: "   "}
	assert.Equal(t, "short summary", a.ReadingText())

	a.Body = "body text"
	assert.Equal(t, "body text", a.ReadingText())
}

func TestNormalize_Defaults(t *testing.T) {
	articles := []Article{{ID: " a ", Title: " Title "}}
	require.NoError(t, Normalize(articles))

	got := articles[0]
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, "Title", got.Title)
	assert.Equal(t, FormatText, got.BodyFormat)
	assert.Equal(t, "General", got.Category)
	assert.Equal(t, []string{"General"}, got.Categories)
}

func TestNormalize_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		articles []Article
		wantErr  string
	}{
		{"missing id", []Article{{Title: "x"}}, "id is required"},
		{"duplicate id", []Article{{ID: "a", Title: "x"}, {ID: "a", Title: "y"}}, "duplicate id"},
		{"missing title", []Article{{ID: "a"}}, "title is required"},
		{"bad format", []Article{{ID: "a", Title: "x", BodyFormat: "rtf"}}, "unknown body format"},
		{"negative likes", []Article{{ID: "a", Title: "x", Likes: -1}}, "must not be negative"},
		{
			"duplicate comment id",
			[]Article{{ID: "a", Title: "x", Comments: []SeedComment{
				{ID: 3, Replies: []SeedReply{{ID: 3}}},
			}}},
			"duplicate comment id 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Normalize(tt.articles)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalize_AssignsCommentIDsAboveSeededOnes(t *testing.T) {
	articles := []Article{{
		ID:    "a",
		Title: "x",
		Comments: []SeedComment{
			{Content: "first", Replies: []SeedReply{{ID: 7, Content: "seeded reply"}}},
			{Content: "second", Replies: []SeedReply{{Content: "new reply"}}},
		},
	}}
	require.NoError(t, Normalize(articles))

	comments := articles[0].Comments
	assert.Equal(t, int64(8), comments[0].ID)
	assert.Equal(t, int64(7), comments[0].Replies[0].ID)
	assert.Equal(t, int64(9), comments[1].ID)
	assert.Equal(t, int64(10), comments[1].Replies[0].ID)
}
