package interfaces

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves a page and parses it as HTML. Implementations must send
// credentials (cookies) so that authenticated listing sites resolve correctly.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}
