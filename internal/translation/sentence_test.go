package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_translation "github.com/at-ishikawa/parlami/internal/mocks/translation"
	"github.com/at-ishikawa/parlami/internal/storage"
)

func TestService_BuildSentence(t *testing.T) {
	apiErr := errors.New("quota exceeded")

	tests := []struct {
		name      string
		text      string
		to        string
		setupMock func(client *mock_translation.MockClient)
		want      []WordBreakdown
		wantText  string
		wantErr   error
	}{
		{
			name: "same length",
			text: "I want to eat",
			to:   "it",
			setupMock: func(client *mock_translation.MockClient) {
				client.EXPECT().Translate(gomock.Any(), "I want to eat", "en", "it").Return("Io voglio di mangiare", nil)
			},
			wantText: "Io voglio di mangiare",
			want: []WordBreakdown{
				{English: "i", Translated: "Io", Part: PartPronoun},
				{English: "want", Translated: "voglio", Part: PartVerb},
				{English: "to", Translated: "di", Part: PartPreposition},
				{English: "eat", Translated: "mangiare", Part: PartVerb},
			},
		},
		{
			name: "shorter translation leaves the rest empty",
			text: "I want the  pizza",
			to:   "it",
			setupMock: func(client *mock_translation.MockClient) {
				client.EXPECT().Translate(gomock.Any(), "I want the  pizza", "en", "it").Return("Voglio la pizza", nil)
			},
			wantText: "Voglio la pizza",
			want: []WordBreakdown{
				{English: "i", Translated: "Voglio", Part: PartPronoun},
				{English: "want", Translated: "la", Part: PartVerb},
				{English: "the", Translated: "pizza", Part: PartArticle},
				{English: "pizza", Translated: "", Part: PartWord},
			},
		},
		{
			name: "punctuation keeps a word unclassified",
			text: "Hello, you",
			to:   "es",
			setupMock: func(client *mock_translation.MockClient) {
				client.EXPECT().Translate(gomock.Any(), "Hello, you", "en", "es").Return("Hola, tú", nil)
			},
			wantText: "Hola, tú",
			want: []WordBreakdown{
				{English: "hello,", Translated: "Hola,", Part: PartWord},
				{English: "you", Translated: "tú", Part: PartPronoun},
			},
		},
		{
			name:      "blank sentence",
			text:      "  ",
			to:        "it",
			setupMock: func(client *mock_translation.MockClient) {},
			wantErr:   ErrEmptyText,
		},
		{
			name: "api failure",
			text: "We go",
			to:   "it",
			setupMock: func(client *mock_translation.MockClient) {
				client.EXPECT().Translate(gomock.Any(), "We go", "en", "it").Return("", apiErr)
			},
			wantErr: apiErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_translation.NewMockClient(ctrl)
			tt.setupMock(client)
			clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
			service := NewService(client, NewCache(storage.NewMemoryStore(), 0, clock.Now), clock.Now)

			got, err := service.BuildSentence(context.Background(), tt.text, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, got.Translated)
			assert.Equal(t, "en", got.FromLang)
			assert.Equal(t, tt.to, got.ToLang)
			assert.Equal(t, tt.want, got.Words)
		})
	}
}

func TestPartOfSpeechOf(t *testing.T) {
	tests := []struct {
		word string
		want PartOfSpeech
	}{
		{word: "they", want: PartPronoun},
		{word: "am", want: PartVerb},
		{word: "an", want: PartArticle},
		{word: "with", want: PartPreposition},
		{word: "pizza", want: PartWord},
		{word: "The", want: PartWord},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, PartOfSpeechOf(tt.word))
		})
	}
}
