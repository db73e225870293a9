package translation

import (
	"context"
	"strings"

	"github.com/at-ishikawa/parlami/internal/languages"
)

// PartOfSpeech is the rough grammatical role of an English word.
type PartOfSpeech string

const (
	PartWord        PartOfSpeech = "word"
	PartPronoun     PartOfSpeech = "pronoun"
	PartVerb        PartOfSpeech = "verb"
	PartArticle     PartOfSpeech = "article"
	PartPreposition PartOfSpeech = "preposition"
)

// partsOfSpeech lists the only words that are classified. Everything else
// is a PartWord.
var partsOfSpeech = map[string]PartOfSpeech{
	"i": PartPronoun, "you": PartPronoun, "he": PartPronoun, "she": PartPronoun, "we": PartPronoun, "they": PartPronoun,
	"want": PartVerb, "eat": PartVerb, "go": PartVerb, "see": PartVerb, "have": PartVerb, "be": PartVerb, "is": PartVerb, "are": PartVerb, "am": PartVerb,
	"the": PartArticle, "a": PartArticle, "an": PartArticle,
	"to": PartPreposition, "in": PartPreposition, "on": PartPreposition, "at": PartPreposition, "for": PartPreposition, "with": PartPreposition,
}

// WordBreakdown pairs an English word with the word at the same position of
// the translation, which is empty when the translation is shorter.
type WordBreakdown struct {
	English    string       `json:"english"`
	Translated string       `json:"translated"`
	Part       PartOfSpeech `json:"part"`
}

// Sentence is a translated English sentence with its word breakdown.
type Sentence struct {
	Translation
	Words []WordBreakdown `json:"words"`
}

// BuildSentence translates an English sentence into to and breaks it down
// word by word. Words are matched by position only.
func (s *Service) BuildSentence(ctx context.Context, text, to string) (Sentence, error) {
	result, err := s.Translate(ctx, text, languages.English.Code, to)
	if err != nil {
		return Sentence{}, err
	}

	translated := strings.Fields(result.Translated)
	english := strings.Fields(strings.ToLower(text))
	words := make([]WordBreakdown, 0, len(english))
	for i, word := range english {
		breakdown := WordBreakdown{English: word, Part: PartOfSpeechOf(word)}
		if i < len(translated) {
			breakdown.Translated = translated[i]
		}
		words = append(words, breakdown)
	}
	return Sentence{Translation: result, Words: words}, nil
}

// PartOfSpeechOf classifies a lowercase English word.
func PartOfSpeechOf(word string) PartOfSpeech {
	if part, ok := partsOfSpeech[word]; ok {
		return part
	}
	return PartWord
}
