package giphy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

const DefaultBaseURL = "https://api.giphy.com/v1/gifs"

var ErrMissingAPIKey = errors.New("giphy api key is empty")

type Config struct {
	APIKey            string
	BaseURL           string
	Lang              string
	Limit             int
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client searches GIFs through the Giphy search API.
type Client struct {
	apiKey  string
	baseURL string
	lang    string
	limit   int
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 10
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(1, int(cfg.RequestsPerSecond)))
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		lang:    cfg.Lang,
		limit:   limit,
		http:    &http.Client{Timeout: timeout},
		limiter: limiter,
	}, nil
}

type searchResponse struct {
	Data []struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Images struct {
			Original struct {
				URL    string `json:"url"`
				Width  string `json:"width"`
				Height string `json:"height"`
			} `json:"original"`
		} `json:"images"`
	} `json:"data"`
}

// Search returns GIFs matching query. Results without a URL are skipped.
func (c *Client) Search(ctx context.Context, query string) ([]entities.Gif, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(c.limit))
	if c.lang != "" {
		params.Set("lang", c.lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	gifs := make([]entities.Gif, 0, len(result.Data))
	for _, d := range result.Data {
		original := d.Images.Original
		if original.URL == "" {
			continue
		}
		width, _ := strconv.Atoi(original.Width)
		height, _ := strconv.Atoi(original.Height)
		gifs = append(gifs, entities.Gif{
			ID:     d.ID,
			Title:  d.Title,
			URL:    original.URL,
			Width:  width,
			Height: height,
		})
	}

	return gifs, nil
}
