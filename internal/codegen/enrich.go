package codegen

import (
	"net/url"
	"regexp"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/go-shiori/go-readability"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// EnrichDescription looks for a URL embedded in a component's description
// and, if found, fetches it, extracts the readable article content, and
// appends it to the description as Markdown. Grounded on
// processor/web-ingester/converter.go's use of the same html-to-markdown
// conversion, paired here with go-shiori/go-readability for the extraction
// step web-ingester otherwise does with its own HTML cleanup.
func EnrichDescription(description string) string {
	match := urlPattern.FindString(description)
	if match == "" {
		return description
	}

	u, err := url.Parse(match)
	if err != nil {
		return description
	}

	article, err := readability.FromURL(u.String(), 10*time.Second)
	if err != nil {
		return description
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(article.Content)
	if err != nil {
		return description
	}

	return description + "\n\n---\nReference (" + article.Title + "):\n" + markdown
}
