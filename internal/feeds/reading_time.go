package feeds

import (
	"math"
	"strings"
	"unicode"
)

// wpmNews is the average adult reading speed for general news prose.
const wpmNews = 200

// CalculateReadingTime estimates reading time in minutes for the given text
// at 200 WPM. Returns a minimum of 1 minute, or 0 for empty text.
func CalculateReadingTime(text string) int {
	words := countWords(text)
	if words == 0 {
		return 0
	}

	return max(1, int(math.Ceil(float64(words)/wpmNews)))
}

// countWords counts words in the text, treating punctuation as a separator.
func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) || strings.ContainsRune(".,;:!?\"'()[]{}—–-", r) {
			if inWord {
				count++
				inWord = false
			}
		} else {
			inWord = true
		}
	}
	if inWord {
		count++
	}
	return count
}
