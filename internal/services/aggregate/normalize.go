package aggregate

import (
	"regexp"
	"strings"
)

// releaseTagRegex matches the fixed vocabulary of cosmetic release tags:
// resolutions, codecs, containers, audio codecs, HDR variants. Two titles
// differing only by such tags must normalize identically.
var releaseTagRegex = regexp.MustCompile(
	`\b(480p|720p|1080p|2160p|4k|hevc|x265|x264|h\.?264|av1|10bit|webrip|webdl|web-dl|bluray|brrip|hdrip|hdr|remux|aac|ddp\d+|dolby|hdr10)\b`)

var (
	bracketChars   = strings.NewReplacer("[", "", "]", "", "(", "", ")", "", "{", "", "}", "")
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiSpaceRegex = regexp.MustCompile(`\s+`)
)

// NormalizeTitle computes the dedup/ranking key for a display title:
// lowercase, brackets stripped, non-alphanumeric runs collapsed to spaces,
// release tags removed, whitespace collapsed.
func NormalizeTitle(title string) string {
	value := strings.ToLower(title)
	value = bracketChars.Replace(value)
	value = nonAlnumRegex.ReplaceAllString(value, " ")
	value = releaseTagRegex.ReplaceAllString(value, " ")
	value = multiSpaceRegex.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}
