package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"vitrine_back_end/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultBaseURL = "https://fakestoreapi.com"
	CacheTTL       = 10 * time.Minute
)

// Client consomme l'API catalogue publique en lecture seule. Les réponses
// sont décodées puis renvoyées telles quelles ; un cache Redis court évite
// de marteler l'API à chaque ouverture d'écran.
type Client struct {
	baseURL string
	http    *http.Client
	rdb     *redis.Client // peut être nil (pas de cache)
}

func NewClient(rdb *redis.Client) *Client {
	baseURL := os.Getenv("CATALOG_API_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		rdb:     rdb,
	}
}

// NewClientWithBaseURL sert aux tests.
func NewClientWithBaseURL(baseURL string, rdb *redis.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		rdb:     rdb,
	}
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.fetch(ctx, "/products", "catalog:products", &products)
	return products, err
}

func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	key := "catalog:product:" + id
	if err := c.fetch(ctx, "/products/"+url.PathEscape(id), key, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := c.fetch(ctx, "/products/categories", "catalog:categories", &categories)
	return categories, err
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	key := "catalog:category:" + category
	err := c.fetch(ctx, "/products/category/"+url.PathEscape(category), key, &products)
	return products, err
}

// fetch applique le schéma cache-aside : Redis d'abord, l'API ensuite.
func (c *Client) fetch(ctx context.Context, path, cacheKey string, out any) error {
	if c.rdb != nil {
		if data, err := c.rdb.Get(ctx, cacheKey).Result(); err == nil {
			if json.Unmarshal([]byte(data), out) == nil {
				return nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalogue injoignable: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("catalogue a renvoyé %d pour %s", res.StatusCode, path)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("réponse catalogue invalide: %v", err)
	}

	if c.rdb != nil {
		if data, err := json.Marshal(out); err == nil {
			c.rdb.Set(ctx, cacheKey, data, CacheTTL)
		}
	}
	return nil
}
