package dto

// ProviderNewsResponse is the body returned by the news provider API.
type ProviderNewsResponse struct {
	Data []ProviderNewsItem `json:"data"`
}

// ProviderNewsItem is a single provider record. PubDate is left as a string because the
// provider is not consistent about its layout.
type ProviderNewsItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	URL     string `json:"url"`
	PubDate string `json:"pubDate"`
}
