package shopping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Recommender fetches product recommendations for a user
type Recommender interface {
	GetProductRecommendations(ctx context.Context, userID string) ([]Product, error)
}

// RecommenderFunc adapts a function into a Recommender
type RecommenderFunc func(ctx context.Context, userID string) ([]Product, error)

func (f RecommenderFunc) GetProductRecommendations(ctx context.Context, userID string) ([]Product, error) {
	return f(ctx, userID)
}

// DefaultRecommenderTimeout bounds calls to the recommendation service
const DefaultRecommenderTimeout = 5 * time.Second

// RecommenderClient talks to the external recommendation service over HTTP
type RecommenderClient struct {
	baseURL string
	client  *http.Client
	logger  Logger
}

type RecommenderClientOption func(*RecommenderClient)

// WithRecommenderHTTPClient overrides the HTTP client
func WithRecommenderHTTPClient(client *http.Client) RecommenderClientOption {
	return func(r *RecommenderClient) {
		if client != nil {
			r.client = client
		}
	}
}

// WithRecommenderLogger sets the client logger
func WithRecommenderLogger(logger Logger) RecommenderClientOption {
	return func(r *RecommenderClient) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRecommenderClient creates a client against the given base URL
func NewRecommenderClient(baseURL string, opts ...RecommenderClientOption) *RecommenderClient {
	r := &RecommenderClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: DefaultRecommenderTimeout,
		},
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// GetProductRecommendations fetches the recommendation list for a user
func (r *RecommenderClient) GetProductRecommendations(ctx context.Context, userID string) ([]Product, error) {
	endpoint := fmt.Sprintf("%s/%s/recommend", r.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build recommendation request")
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "recommendation service unreachable")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, goerrors.New("recommendation service returned an error", goerrors.CategoryOperation).
			WithMetadata(map[string]any{
				"status":  res.StatusCode,
				"user_id": userID,
			})
	}

	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to decode recommendation response")
	}

	return products, nil
}
