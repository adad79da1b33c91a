package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RatingSnapshot is the transient result of an external rating lookup.
// Available false is the unavailable sentinel: a degraded lookup, not a
// failure, and distinct from a genuine zero rating.
type RatingSnapshot struct {
	AverageRating float64
	RatingsCount  int64
	Available     bool
}

// RatingGateway looks up the aggregate rating for an identifier.
type RatingGateway interface {
	ReviewCounts(ctx context.Context, isbn string) RatingSnapshot
}

// GoodreadsClient calls the Goodreads review_counts endpoint.
type GoodreadsClient struct {
	baseURL    string
	key        string
	httpClient *http.Client
	log        *zap.Logger
}

func NewGoodreadsClient(baseURL, key string, timeout time.Duration, log *zap.Logger) *GoodreadsClient {
	return &GoodreadsClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		key:        key,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With(zap.String("gateway", "goodreads")),
	}
}

// flexFloat decodes a JSON number that the upstream serves either bare or as
// a quoted string ("4.25").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type reviewCountsResponse struct {
	Books []struct {
		AverageRating flexFloat `json:"average_rating"`
		RatingsCount  int64     `json:"ratings_count"`
	} `json:"books"`
}

// ReviewCounts fetches the aggregate rating for an ISBN. Every fault path —
// request error, timeout, non-2xx status, malformed payload, empty books
// list — degrades to the unavailable snapshot. It never returns an error:
// a broken upstream must not break the review page.
func (c *GoodreadsClient) ReviewCounts(ctx context.Context, isbn string) RatingSnapshot {
	endpoint := c.baseURL + "/book/review_counts.json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Error("Failed to build review counts request", zap.Error(err))
		return RatingSnapshot{}
	}

	query := url.Values{}
	query.Set("key", c.key)
	query.Set("isbns", isbn)
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Review counts request failed",
			zap.Error(err),
			zap.String("isbn", isbn),
		)
		return RatingSnapshot{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("Review counts returned non-2xx status",
			zap.Int("status", resp.StatusCode),
			zap.String("isbn", isbn),
		)
		return RatingSnapshot{}
	}

	var payload reviewCountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Warn("Failed to decode review counts payload",
			zap.Error(err),
			zap.String("isbn", isbn),
		)
		return RatingSnapshot{}
	}

	if len(payload.Books) == 0 {
		c.log.Warn("Review counts payload has no books", zap.String("isbn", isbn))
		return RatingSnapshot{}
	}

	return RatingSnapshot{
		AverageRating: float64(payload.Books[0].AverageRating),
		RatingsCount:  payload.Books[0].RatingsCount,
		Available:     true,
	}
}
