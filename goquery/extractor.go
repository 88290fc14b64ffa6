// Package goquery provides a goquery-based implementation of
// webvision.Extractor. Brand name and description resolution are ordered
// fallback chains running from the most authoritative source (explicit
// site-name tags) down to domain-name guessing, because real-world pages
// populate metadata inconsistently.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webvision"
)

const (
	maxDescriptionLen  = 200
	defaultFaviconPath = "/favicon.ico"
)

// brandSeparators split composite og:title values like "Acme - Home".
// Order matters: the first separator present in the text wins.
var brandSeparators = []string{" - ", " | ", " :: ", " • ", " — ", " – "}

// titleSeparators extend brandSeparators for <title> text, which often
// carries phrasing like "Dashboard on Acme".
var titleSeparators = []string{" - ", " | ", " :: ", " • ", " — ", " – ", " on ", " at "}

// platformNames maps well-known domain labels to their canonical display
// capitalization, which plain first-letter capitalization gets wrong.
var platformNames = map[string]string{
	"youtube":   "YouTube",
	"facebook":  "Facebook",
	"twitter":   "Twitter",
	"instagram": "Instagram",
	"linkedin":  "LinkedIn",
	"reddit":    "Reddit",
	"github":    "GitHub",
}

// Ensure Extractor implements webvision.Extractor at compile time.
var _ webvision.Extractor = (*Extractor)(nil)

// Extractor derives website metadata from HTML using goquery selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract derives metadata from html. It is total: unparseable HTML or a
// malformed source URL degrade to defaults, never an error.
func (e *Extractor) Extract(html string, sourceURL string) *webvision.Metadata {
	meta := &webvision.Metadata{
		BrandName:   webvision.DefaultBrandName,
		Description: webvision.DefaultDescription,
		Keywords:    []string{},
		Language:    webvision.DefaultLanguage,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return meta
	}

	// A nil src disables the URL-derived strategies but nothing else.
	src, err := url.Parse(sourceURL)
	if err != nil {
		src = nil
	}

	meta.BrandName = resolveBrandName(doc, src)
	meta.Description = resolveDescription(doc)
	meta.FaviconURL = resolveFavicon(doc, src)
	meta.Keywords = extractKeywords(doc)
	meta.Language = extractLanguage(doc)

	return meta
}

// brandStrategy is one total brand-name extraction strategy. It returns ""
// when it has nothing usable, handing off to the next strategy in the chain.
type brandStrategy func(doc *goquery.Document, src *url.URL) string

var brandStrategies = []brandStrategy{
	brandFromSiteName,
	brandFromApplicationName,
	brandFromOpenGraphTitle,
	brandFromTitle,
	brandFromHeading,
	brandFromHostname,
}

func resolveBrandName(doc *goquery.Document, src *url.URL) string {
	for _, strategy := range brandStrategies {
		if name := strategy(doc, src); name != "" {
			return name
		}
	}
	return webvision.DefaultBrandName
}

func brandFromSiteName(doc *goquery.Document, _ *url.URL) string {
	return metaContent(doc, `meta[property="og:site_name"]`)
}

func brandFromApplicationName(doc *goquery.Document, _ *url.URL) string {
	return metaContent(doc, `meta[name="application-name"]`)
}

func brandFromOpenGraphTitle(doc *goquery.Document, _ *url.URL) string {
	title := metaContent(doc, `meta[property="og:title"]`)
	if title == "" {
		return ""
	}
	return truncate(splitOnFirst(title, brandSeparators), webvision.MaxBrandNameLen)
}

func brandFromTitle(doc *goquery.Document, src *url.URL) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}

	// YouTube titles carry the video name plus a " - YouTube" suffix;
	// splitting on separators would mangle video names containing them.
	if src != nil && isYouTubeHost(src.Hostname()) {
		return strings.TrimSpace(strings.TrimSuffix(title, " - YouTube"))
	}

	return truncate(splitOnFirst(title, titleSeparators), webvision.MaxBrandNameLen)
}

func brandFromHeading(doc *goquery.Document, _ *url.URL) string {
	heading := strings.TrimSpace(doc.Find("h1").First().Text())
	return truncate(heading, webvision.MaxBrandNameLen)
}

func brandFromHostname(_ *goquery.Document, src *url.URL) string {
	label := hostLabel(src)
	if label == "" {
		return ""
	}
	if canonical, ok := platformNames[label]; ok {
		return canonical
	}
	return capitalize(label)
}

// hostLabel returns the first dot-separated label of the hostname with a
// leading "www." stripped, lower-cased. Empty when src is nil or hostless.
func hostLabel(src *url.URL) string {
	if src == nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(src.Hostname()), "www.")
	label, _, _ := strings.Cut(host, ".")
	return label
}

func isYouTubeHost(hostname string) bool {
	return strings.TrimPrefix(strings.ToLower(hostname), "www.") == "youtube.com"
}

// descriptionSelectors are tried in priority order before falling back to
// body text.
var descriptionSelectors = []string{
	`meta[name="description"]`,
	`meta[property="og:description"]`,
	`meta[name="twitter:description"]`,
}

func resolveDescription(doc *goquery.Document) string {
	for _, selector := range descriptionSelectors {
		if content := metaContent(doc, selector); content != "" {
			return content
		}
	}
	if text := strings.TrimSpace(doc.Find("p").First().Text()); text != "" {
		return truncate(text, maxDescriptionLen)
	}
	return webvision.DefaultDescription
}

// faviconSelectors are tried in priority order before the conventional
// /favicon.ico default.
var faviconSelectors = []string{
	`link[rel="icon"]`,
	`link[rel="shortcut icon"]`,
	`link[rel="apple-touch-icon"]`,
}

func resolveFavicon(doc *goquery.Document, src *url.URL) string {
	href := defaultFaviconPath
	for _, selector := range faviconSelectors {
		if h, ok := doc.Find(selector).First().Attr("href"); ok && strings.TrimSpace(h) != "" {
			href = strings.TrimSpace(h)
			break
		}
	}

	if src == nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return src.ResolveReference(ref).String()
}

func extractKeywords(doc *goquery.Document) []string {
	keywords := []string{}
	content := metaContent(doc, `meta[name="keywords"]`)
	if content == "" {
		return keywords
	}
	for _, token := range strings.Split(content, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		keywords = append(keywords, token)
		if len(keywords) == webvision.MaxKeywords {
			break
		}
	}
	return keywords
}

func extractLanguage(doc *goquery.Document) string {
	if lang, ok := doc.Find("html").First().Attr("lang"); ok {
		if lang = strings.TrimSpace(lang); lang != "" {
			return lang
		}
	}
	if lang := metaContent(doc, `meta[http-equiv="content-language"]`); lang != "" {
		return lang
	}
	return webvision.DefaultLanguage
}

// metaContent returns the trimmed content attribute of the first element
// matching selector.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// splitOnFirst takes the left segment at the first separator found in s.
// Separators are checked in order; the first one present anywhere wins.
func splitOnFirst(s string, separators []string) string {
	for _, sep := range separators {
		if before, _, found := strings.Cut(s, sep); found {
			return strings.TrimSpace(before)
		}
	}
	return s
}

// truncate bounds s to max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
