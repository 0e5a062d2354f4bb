package pipeline

import "regexp"

// roboticLexicon is the fixed set of filler phrases scrubbed from generated
// posts. Patterns are matched case-insensitively and longest-first so that
// compound phrases win over their fragments. Applied to the post text only;
// image prompts and scripts pass through untouched.
var roboticLexicon = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`(?i)in today's fast-paced world,?\s*`), ""},
	{regexp.MustCompile(`(?i)at the end of the day,?\s*`), ""},
	{regexp.MustCompile(`(?i)a testament to`), "proof of"},
	{regexp.MustCompile(`(?i)paradigm shift`), "shift"},
	{regexp.MustCompile(`(?i)game-chang\w*`), "turning point"},
	{regexp.MustCompile(`(?i)cutting-edge`), "modern"},
	{regexp.MustCompile(`(?i)revolutioniz\w*`), "change"},
	{regexp.MustCompile(`(?i)deep dive`), "close look"},
	{regexp.MustCompile(`(?i)delve\w*`), "dig"},
	{regexp.MustCompile(`(?i)tapestry`), "mix"},
	{regexp.MustCompile(`(?i)synerg\w*`), "fit"},
	{regexp.MustCompile(`(?i)unleash\w*`), "unlock"},
	{regexp.MustCompile(`(?i)leverag\w*`), "use"},
	{regexp.MustCompile(`(?i)elevate your`), "improve your"},
}

// FilterRoboticPhrases deterministically removes or replaces the banned
// lexicon. The function is idempotent: no replacement reintroduces a banned
// term.
func FilterRoboticPhrases(text string) string {
	for _, entry := range roboticLexicon {
		text = entry.pattern.ReplaceAllString(text, entry.repl)
	}
	return text
}
