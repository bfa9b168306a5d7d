package matcher

import "regexp"

// bracketSpans matches parenthesized, bracketed and full-width bracketed
// annotations including their delimiters: (2021), [Full Album], 【Complete】.
var bracketSpans = regexp.MustCompile(`(\((.*?)\)|\[(.*?)\]|【(.*?)】)`)

// NormalizeTitle strips bracketed annotations from a video title so it works
// better as an album search query. Whitespace around the removed spans is
// left as is.
func NormalizeTitle(title string) string {
	return bracketSpans.ReplaceAllString(title, "")
}
