package ports

import "context"

// BrowserOpener shows a served page to the user
type BrowserOpener interface {
	Open(ctx context.Context, url string) error
}
