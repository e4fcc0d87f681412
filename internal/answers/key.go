// Package answers resolves application form questions to answers, reusing
// previously given answers before asking the LLM and never letting a
// provider failure block a form.
package answers

import "strings"

// choiceSep joins a normalized label with its option list in a memory key.
// Free-text keys never contain it, which is how the two kinds are told
// apart when matching loosely.
const choiceSep = "||"

// MemoryKey builds the lookup key for a question. Free-text questions key
// on the normalized label alone; choice questions append the verbatim
// option texts so the same wording with different options is a different
// question.
func MemoryKey(label string, options []string) string {
	key := normalize(label)
	if len(options) == 0 {
		return key
	}
	return key + choiceSep + strings.Join(options, "|")
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// CanonicalKey maps a stored question back to its memory key. Free-text
// rows get the same folding MemoryKey applies, so hand-edited sheet rows
// still match; choice keys carry their options verbatim and pass through
// untouched.
func CanonicalKey(stored string) string {
	if isChoiceKey(stored) {
		return stored
	}
	return normalize(stored)
}

// isChoiceKey reports whether key was built for a choice question.
func isChoiceKey(key string) bool {
	return strings.Contains(key, choiceSep)
}

// topicPhrases drive the loose match between differently worded free-text
// questions that ask the same thing.
var topicPhrases = []string{"why", "interest", "experience", "salary", "start", "location"}

// looselySimilar reports whether two free-text keys share a topic phrase.
func looselySimilar(a, b string) bool {
	for _, phrase := range topicPhrases {
		if strings.Contains(a, phrase) && strings.Contains(b, phrase) {
			return true
		}
	}
	return false
}
