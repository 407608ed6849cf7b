package markup

import "strings"

// Summary extracts the first sentence of a comment body: everything up to
// and including the first period that is followed by whitespace or ends
// the text. Periods that end abbreviation-like tokens ("Dr.", "e.g.") and
// doubled periods do not terminate the summary. Whitespace runs collapse
// to single spaces.
func Summary(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	for i := 0; i < len(text); i++ {
		if text[i] != '.' {
			continue
		}
		if i > 0 && text[i-1] == '.' {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' {
			continue
		}
		if abbreviation(text[:i]) {
			continue
		}
		return text[:i+1]
	}
	return text
}

// abbreviation reports whether the text before a period ends in a token
// that reads as an abbreviation: a single letter, or a short capitalized
// word such as "Dr" or "Mr".
func abbreviation(before string) bool {
	i := len(before)
	for i > 0 && isWordByte(before[i-1]) {
		i--
	}
	word := before[i:]
	switch {
	case len(word) == 1:
		return true
	case len(word) <= 3 && word[0] >= 'A' && word[0] <= 'Z':
		return true
	}
	return false
}
