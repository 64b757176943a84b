package hydrate

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/shopsphere/storefront/internal/catalog"
	"github.com/shopsphere/storefront/internal/index"
)

// DefaultWorkers bounds in-flight detail fetches. A full grid page is 48
// items; without the bound a page whose summaries all lack images would fire
// 48 requests at once.
const DefaultWorkers = 8

// Hydrator fills image gaps for visible products by fetching each product's
// full JSON and extracting an image from it. Best-effort enrichment: a failed
// key caches a negative and never disturbs its siblings or the page render.
type Hydrator struct {
	client  *index.Client
	cache   *Cache
	workers int
}

func New(client *index.Client, cache *Cache, workers int) *Hydrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Hydrator{client: client, cache: cache, workers: workers}
}

// Cache exposes the shared image cache for render-time lookups.
func (h *Hydrator) Cache() *Cache { return h.cache }

// Hydrate resolves images for the given product keys. Keys already cached
// (positives and negatives alike) are skipped. At most `workers` fetches are
// in flight at any moment; cancelling ctx stops new units of work without
// aborting calls already on the wire, so a stale page's workers drain quickly
// instead of clobbering anything.
func (h *Hydrator) Hydrate(ctx context.Context, keys []string) {
	needs := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, cached := h.cache.Lookup(k); cached {
			continue
		}
		needs = append(needs, k)
	}
	if len(needs) == 0 {
		return
	}

	queue := make(chan string)
	g, ctx := errgroup.WithContext(ctx)

	for range h.workers {
		g.Go(func() error {
			for key := range queue {
				if ctx.Err() != nil {
					continue
				}
				h.hydrateOne(ctx, key)
			}
			return nil
		})
	}

	for _, k := range needs {
		queue <- k
	}
	close(queue)

	_ = g.Wait()
}

func (h *Hydrator) hydrateOne(ctx context.Context, key string) {
	escaped := url.PathEscape(key)
	paths := []string{
		"/products/" + escaped + ".json",
		"/static/products/" + escaped + ".json",
	}

	var detail map[string]any
	err := h.client.FetchFirst(ctx, paths, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&detail)
	})
	if err != nil {
		slog.Debug("image hydration miss", "key", key, "error", err)
		h.cache.Set(key, "")
		return
	}

	h.cache.Set(key, catalog.ImageFromDetail(detail))
}
