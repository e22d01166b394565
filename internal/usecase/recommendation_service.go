package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kalpavruksha/backend/internal/domain"
)

const (
	documentCacheKey  = "recommendations:document"
	treatmentAttempts = 3
)

// RecommendationServiceConfig holds configuration for the recommendation service
type RecommendationServiceConfig struct {
	CacheTTL     time.Duration
	RetryBackoff time.Duration // base backoff before the first retry
}

// RecommendationService resolves treatment product recommendations from three
// sources (persisted overlay, built-in static table, fetched document) and
// drives the AI treatment-plan generation.
type RecommendationService struct {
	docSource    domain.DocumentSource
	overlay      domain.OverlayStore
	generative   domain.GenerativeClient
	cache        domain.CacheRepository
	cacheTTL     time.Duration
	retryBackoff time.Duration
}

// NewRecommendationService creates a new recommendation service with dependencies.
// cache may be nil, in which case the document source is fetched on every call.
func NewRecommendationService(
	docSource domain.DocumentSource,
	overlay domain.OverlayStore,
	generative domain.GenerativeClient,
	cache domain.CacheRepository,
	config RecommendationServiceConfig,
) *RecommendationService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}
	retryBackoff := config.RetryBackoff
	if retryBackoff == 0 {
		retryBackoff = time.Second
	}

	return &RecommendationService{
		docSource:    docSource,
		overlay:      overlay,
		generative:   generative,
		cache:        cache,
		cacheTTL:     cacheTTL,
		retryBackoff: retryBackoff,
	}
}

// ResolveProducts merges the overlay, static table and fetched document into
// a deduplicated product list for a disease label. The contract is
// best-effort: every downstream failure degrades the result, nothing is ever
// raised to the caller. Worst case the caller gets the static table alone.
func (s *RecommendationService) ResolveProducts(ctx context.Context, diseaseType string) (products []domain.Product) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[RECOMMEND] merge pipeline failed: %v, falling back to static table", r)
			products = LookupStaticProducts(diseaseType)
		}
	}()

	doc := s.fetchDocument(ctx)
	ovl := s.readOverlay(ctx)
	merged, overlayKeys := mergeOverlay(doc, ovl)

	n := NormalizeKey(diseaseType)

	// Document-source match: first merged entry with bidirectional containment.
	var jsonProducts []domain.Product
	for _, entry := range merged {
		if keysMatch(NormalizeKey(entry.Key), n) {
			jsonProducts = entry.Products
			break
		}
	}

	// Overlay match: first overlay-contributed entry, by exact normalized
	// equality or containment. The equality arm is redundant with containment
	// but kept: the display contract depends on this exact rule.
	var lsProducts []domain.Product
	for _, entry := range merged {
		key := NormalizeKey(entry.Key)
		if !overlayKeys[key] {
			continue
		}
		if key == n || keysMatch(key, n) {
			lsProducts = entry.Products
			break
		}
	}

	staticProducts := LookupStaticProducts(diseaseType)

	// Priority order: overlay first (user-provided wins the display), static
	// built-ins next (available even fully offline), document entries last.
	combined := make([]domain.Product, 0, len(lsProducts)+len(staticProducts)+len(jsonProducts))
	combined = append(combined, lsProducts...)
	combined = append(combined, staticProducts...)
	combined = append(combined, jsonProducts...)

	return dedupeProducts(combined)
}

// fetchDocument returns the centrally served recommendation document,
// consulting the TTL cache first. Any failure yields an empty document.
func (s *RecommendationService) fetchDocument(ctx context.Context) *domain.RecommendationDocument {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, documentCacheKey); err == nil {
			if doc, ok := cached.(*domain.RecommendationDocument); ok {
				return doc
			}
		}
	}

	doc, err := s.docSource.FetchDocument(ctx)
	if err != nil || doc == nil {
		if err != nil {
			log.Printf("[RECOMMEND] document source unavailable: %v", err)
		}
		return &domain.RecommendationDocument{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, documentCacheKey, doc, s.cacheTTL); err != nil {
			log.Printf("[RECOMMEND] failed to cache document: %v", err)
		}
	}
	return doc
}

// readOverlay returns the persisted overlay, empty on any failure.
func (s *RecommendationService) readOverlay(ctx context.Context) *domain.RecommendationDocument {
	if s.overlay == nil {
		return &domain.RecommendationDocument{}
	}
	ovl, err := s.overlay.ReadOverlay(ctx)
	if err != nil || ovl == nil {
		if err != nil {
			log.Printf("[RECOMMEND] overlay unavailable: %v", err)
		}
		return &domain.RecommendationDocument{}
	}
	return ovl
}

// mergeOverlay folds overlay entries into a copy of the document entries.
// An overlay entry whose normalized key equals a document entry's key extends
// that entry's product list (never replaces it); otherwise the overlay entry
// is appended as new. The returned set records which normalized keys the
// overlay touched.
func mergeOverlay(doc, ovl *domain.RecommendationDocument) ([]domain.RecommendationEntry, map[string]bool) {
	merged := make([]domain.RecommendationEntry, len(doc.Items))
	for i, entry := range doc.Items {
		merged[i] = domain.RecommendationEntry{
			Key:      entry.Key,
			Products: append([]domain.Product(nil), entry.Products...),
		}
	}

	overlayKeys := make(map[string]bool, len(ovl.Items))
	for _, entry := range ovl.Items {
		key := NormalizeKey(entry.Key)
		overlayKeys[key] = true

		found := false
		for i := range merged {
			if NormalizeKey(merged[i].Key) == key {
				merged[i].Products = append(merged[i].Products, entry.Products...)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, domain.RecommendationEntry{
				Key:      entry.Key,
				Products: append([]domain.Product(nil), entry.Products...),
			})
		}
	}

	return merged, overlayKeys
}

// dedupeProducts trims every product, drops nameless ones and removes
// duplicates by the exact (name, url) pair, keeping the first occurrence.
func dedupeProducts(products []domain.Product) []domain.Product {
	seen := make(map[string]bool, len(products))
	result := make([]domain.Product, 0, len(products))

	for _, p := range products {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		url := strings.TrimSpace(p.URL)

		identity := name + "\x00" + url
		if seen[identity] {
			continue
		}
		seen[identity] = true
		result = append(result, domain.Product{Name: name, URL: url})
	}

	return result
}

// RenderProducts renders a product list as a Markdown block. The output is
// byte-stable for identical input: the treatment prompt instructs the model
// to reproduce it exactly, so even whitespace matters here.
func RenderProducts(products []domain.Product) string {
	if len(products) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n**Recommended Products:**")
	for _, p := range products {
		name := strings.TrimSpace(p.Name)
		url := strings.TrimSpace(p.URL)
		if url != "" {
			fmt.Fprintf(&b, "\n- [%s](%s)", name, url)
		} else {
			fmt.Fprintf(&b, "\n- %s", name)
		}
	}
	return b.String()
}

// GetTreatment asks the generative service for a treatment plan in the
// requested language, with the resolved product list appended verbatim.
// Up to 3 attempts with exponential backoff (1s, 2s before retries); after
// that a fixed fallback message is returned. This call never fails.
func (s *RecommendationService) GetTreatment(ctx context.Context, diseaseType, language string) string {
	products := s.ResolveProducts(ctx, diseaseType)
	prompt := buildTreatmentPrompt(diseaseType, language, RenderProducts(products))

	for attempt := 0; attempt < treatmentAttempts; attempt++ {
		if attempt > 0 {
			wait := s.retryBackoff * (1 << (attempt - 1))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				log.Printf("[RECOMMEND] treatment generation cancelled during backoff: %v", ctx.Err())
				return treatmentFallback
			}
		}

		text, err := s.generative.GenerateText(ctx, prompt)
		if err != nil {
			log.Printf("[RECOMMEND] treatment generation failed (attempt %d/%d): %v", attempt+1, treatmentAttempts, err)
			continue
		}
		return strings.TrimSpace(text)
	}

	return treatmentFallback
}
