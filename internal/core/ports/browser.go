package ports

// BrowserOpener opens URLs in a web browser.
//
//go:generate mockgen -source=browser.go -destination=mocks/mock_browser.go -package=mocks
type BrowserOpener interface {
	// Open opens url in each named browser, or in the system default when none are named.
	Open(url string, browsers []string) error
}
