package sanitizer

import "regexp"

type PhoneSanitizer struct{}

var phonePatterns = []*regexp.Regexp{
	// Индийские номера: +91 с кодом оператора
	regexp.MustCompile(`\+91[-.\s]?\d{5}[-.\s]?\d{5}`),
	regexp.MustCompile(`\b[6-9]\d{9}\b`),
	regexp.MustCompile(`(?i)(phone|mobile|contact)\s*[:=]\s*["']?([+\d\s\-()]{7,})["']?`),
}

func (s *PhoneSanitizer) Sanitize(text string) string {
	for _, pattern := range phonePatterns {
		text = pattern.ReplaceAllString(text, `[FILTERED_PHONE]`)
	}
	return text
}
