package bot

import (
	"html"
	"net/url"
	"strconv"
	"strings"

	"tezgah/internal/domain"
)

// formatListing renders the result as a Telegram HTML message: bold title,
// bulleted benefits, description, SEO keywords, tags and the numbered
// caption and processed-image lists.
func formatListing(result *domain.ListingResult) string {
	var lines []string

	lines = append(lines, "<b>"+html.EscapeString(result.Listing.Title)+"</b>", "")

	for _, b := range result.Listing.Bullets {
		lines = append(lines, "• "+html.EscapeString(b))
	}
	lines = append(lines, "", html.EscapeString(result.Listing.Description), "")

	if len(result.Listing.SEOKeywords) > 0 {
		lines = append(lines, "<b>SEO:</b> "+html.EscapeString(strings.Join(result.Listing.SEOKeywords, ", ")))
	}
	lines = append(lines, "<b>Etiketler:</b> "+html.EscapeString(strings.Join(result.Listing.HashtagsOrTags, " ")))

	if len(result.Captions) > 0 {
		lines = append(lines, "", "<b>Goersel Aciklamalari:</b>")
		for i, caption := range result.Captions {
			lines = append(lines, strconv.Itoa(i+1)+". "+html.EscapeString(caption))
		}
	}

	if len(result.ProcessedImages) > 0 {
		lines = append(lines, "", "<b>Islenmis Gorseller:</b>")
		for i, u := range result.ProcessedImages {
			lines = append(lines, strconv.Itoa(i+1)+". "+u)
		}
	}

	return strings.Join(lines, "\n")
}

// extractImageURLs splits free text on whitespace, commas and newlines and
// keeps only absolute http(s) URLs.
func extractImageURLs(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ' ' || r == '\t'
	})
	urls := make([]string, 0, len(fields))
	for _, field := range fields {
		candidate := strings.TrimSpace(field)
		if candidate == "" || !isValidHTTPURL(candidate) {
			continue
		}
		urls = append(urls, candidate)
	}
	return urls
}

func isValidHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
