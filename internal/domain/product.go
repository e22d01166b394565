package domain

// Product is a single recommended treatment product.
// Identity for deduplication is the exact (Name, URL) pair after trimming;
// a missing URL participates as the empty string.
type Product struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// RecommendationEntry maps a disease key to an ordered list of products.
// Keys are compared through the normalized containment rule, so
// "Stem Bleeding" and "stembleeding" address the same entry.
type RecommendationEntry struct {
	Key      string    `json:"key"`
	Products []Product `json:"products"`
}

// RecommendationDocument is the shared shape of the centrally served
// recommendation document and the locally persisted overlay.
type RecommendationDocument struct {
	Items []RecommendationEntry `json:"items"`
}
