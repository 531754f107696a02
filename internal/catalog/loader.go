package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gopkg.in/yaml.v3"

	"github.com/nutrikart/storefront/internal/models"
)

// EmbeddedSource names the catalog document compiled into the binary
const EmbeddedSource = "embedded"

//go:embed data/catalog.yaml
var embeddedCatalog []byte

var (
	ErrNoSources         = errors.New("no catalog sources provided")
	ErrDuplicateProduct  = errors.New("duplicate product")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrUnknownCategory   = errors.New("product references unknown category")
	ErrInvalidProduct    = errors.New("invalid product")
)

// Loader reads catalog documents from files, HTTP(S) URLs or the embedded
// default. Sources ending in .gz are gunzipped.
type Loader struct {
	client *http.Client
}

// sourceLoadResult holds the outcome of loading a single source
type sourceLoadResult struct {
	index   int
	catalog models.Catalog
	err     error
}

// NewLoader creates a catalog loader
func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Load fetches every source concurrently and merges them in source order.
// Any failing source fails the whole load.
func (l *Loader) Load(ctx context.Context, sources []string) (models.Catalog, error) {
	if len(sources) == 0 {
		return models.Catalog{}, ErrNoSources
	}

	resultChan := make(chan sourceLoadResult, len(sources))
	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)
		go func(index int, source string) {
			defer wg.Done()

			doc, err := l.loadSource(ctx, source)
			resultChan <- sourceLoadResult{index: index, catalog: doc, err: err}
		}(i, src)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]sourceLoadResult, len(sources))
	for result := range resultChan {
		results[result.index] = result
	}

	docs := make([]models.Catalog, 0, len(results))
	for i, result := range results {
		if result.err != nil {
			return models.Catalog{}, fmt.Errorf("failed to load catalog source %d (%s): %w", i+1, sources[i], result.err)
		}
		docs = append(docs, result.catalog)
	}

	return Merge(docs...)
}

// LoadDefault returns the embedded catalog
func LoadDefault() (models.Catalog, error) {
	doc, err := Parse(bytes.NewReader(embeddedCatalog))
	if err != nil {
		return models.Catalog{}, err
	}
	return Merge(doc)
}

func (l *Loader) loadSource(ctx context.Context, source string) (models.Catalog, error) {
	if source == EmbeddedSource {
		return Parse(bytes.NewReader(embeddedCatalog))
	}

	var (
		body io.ReadCloser
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = l.openURL(ctx, source)
	} else {
		body, err = os.Open(source)
	}
	if err != nil {
		return models.Catalog{}, err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(source, ".gz") {
		gzReader, err := gzip.NewReader(body)
		if err != nil {
			return models.Catalog{}, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	return Parse(r)
}

func (l *Loader) openURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download catalog: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// Parse decodes one YAML catalog document
func Parse(r io.Reader) (models.Catalog, error) {
	var doc models.Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Catalog{}, nil
		}
		return models.Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return doc, nil
}

// Merge concatenates documents, rejects duplicate ids or slugs and products
// pointing at unknown categories, and derives missing category counts.
func Merge(docs ...models.Catalog) (models.Catalog, error) {
	var out models.Catalog
	categoryIDs := make(map[int64]int)
	categorySlugs := make(map[string]struct{})
	productIDs := make(map[int64]struct{})
	productSlugs := make(map[string]struct{})

	for _, doc := range docs {
		for _, c := range doc.Categories {
			if _, dup := categoryIDs[c.ID]; dup {
				return models.Catalog{}, fmt.Errorf("%w: id %d", ErrDuplicateCategory, c.ID)
			}
			if _, dup := categorySlugs[c.Slug]; dup {
				return models.Catalog{}, fmt.Errorf("%w: slug %q", ErrDuplicateCategory, c.Slug)
			}
			categoryIDs[c.ID] = len(out.Categories)
			categorySlugs[c.Slug] = struct{}{}
			out.Categories = append(out.Categories, c)
		}
	}

	counts := make(map[int64]int)
	for _, doc := range docs {
		for _, p := range doc.Products {
			if err := validateProduct(p); err != nil {
				return models.Catalog{}, err
			}
			if _, dup := productIDs[p.ID]; dup {
				return models.Catalog{}, fmt.Errorf("%w: id %d", ErrDuplicateProduct, p.ID)
			}
			if _, dup := productSlugs[p.Slug]; dup {
				return models.Catalog{}, fmt.Errorf("%w: slug %q", ErrDuplicateProduct, p.Slug)
			}
			if _, ok := categoryIDs[p.CategoryID]; !ok {
				return models.Catalog{}, fmt.Errorf("%w: product %q, category %d", ErrUnknownCategory, p.Slug, p.CategoryID)
			}
			productIDs[p.ID] = struct{}{}
			productSlugs[p.Slug] = struct{}{}
			counts[p.CategoryID]++
			out.Products = append(out.Products, p)
		}
	}

	for i := range out.Categories {
		if out.Categories[i].Count == 0 {
			out.Categories[i].Count = counts[out.Categories[i].ID]
		}
	}
	return out, nil
}

func validateProduct(p models.Product) error {
	switch {
	case p.Slug == "":
		return fmt.Errorf("%w: id %d has no slug", ErrInvalidProduct, p.ID)
	case p.Price < 0:
		return fmt.Errorf("%w: %q has negative price", ErrInvalidProduct, p.Slug)
	case p.Discount < 0 || p.Discount > 100:
		return fmt.Errorf("%w: %q discount %v outside 0-100", ErrInvalidProduct, p.Slug, p.Discount)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: %q rating %v outside 0-5", ErrInvalidProduct, p.Slug, p.Rating)
	}
	return nil
}
