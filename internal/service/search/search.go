package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/Skotchmaster/printshop/internal/models"
)

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "name":        {"type": "text"},
      "description": {"type": "text"},
      "category":    {"type": "keyword"},
      "collections": {"type": "keyword"},
      "sku":         {"type": "keyword"},
      "price":       {"type": "double"}
    }
  }
}`

// ProductIndex keeps product documents in one Elasticsearch index.
type ProductIndex struct {
	ES    *elasticsearch.Client
	Index string
}

type productDoc struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Collections string  `json:"collections,omitempty"`
	SKU         string  `json:"sku"`
	Price       float64 `json:"price"`
}

func docFromProduct(p *models.Product) productDoc {
	return productDoc{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Collections: p.Collections,
		SKU:         p.SKU,
		Price:       p.Price.InexactFloat64(),
	}
}

func responseError(op string, status string, body io.Reader) error {
	b, _ := io.ReadAll(body)
	return fmt.Errorf("es: %s: %s: %s", op, status, b)
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (x *ProductIndex) EnsureIndex(ctx context.Context) error {
	res, err := x.ES.Indices.Exists([]string{x.Index}, x.ES.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es: exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = x.ES.Indices.Create(x.Index,
		x.ES.Indices.Create.WithContext(ctx),
		x.ES.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("es: create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res.Status(), res.Body)
	}
	return nil
}

func (x *ProductIndex) Upsert(ctx context.Context, p *models.Product) error {
	body, err := json.Marshal(docFromProduct(p))
	if err != nil {
		return fmt.Errorf("es: marshal: %w", err)
	}

	res, err := x.ES.Index(x.Index, bytes.NewReader(body),
		x.ES.Index.WithContext(ctx),
		x.ES.Index.WithDocumentID(p.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("es: index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res.Status(), res.Body)
	}
	return nil
}

func (x *ProductIndex) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := x.ES.Delete(x.Index, id.String(), x.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es: delete: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res.Status(), res.Body)
	}
	return nil
}

// Search runs a fuzzy match over name and description and returns the total
// hit count with the ids of the requested page, best match first.
func (x *ProductIndex) Search(ctx context.Context, query string, from, size int) (int64, []uuid.UUID, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := x.ES.Search(
		x.ES.Search.WithContext(ctx),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res.Status(), res.Body)
	}

	return decodeHits(res.Body)
}

func decodeHits(r io.Reader) (int64, []uuid.UUID, error) {
	var out struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source productDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return 0, nil, fmt.Errorf("es: decode: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		id, err := uuid.Parse(h.Source.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return out.Hits.Total.Value, ids, nil
}
