package fdc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/tnguyen/foodlog/internal/domain"
)

// Client looks foods up in a FoodData Central compatible service.
type Client interface {
	// Search returns catalog foods matching the query, best match first.
	Search(ctx context.Context, query string) ([]*domain.Food, error)
}

type httpClient struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client against the configured endpoint.
func NewClient(cfg Config) Client {
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// searchRequest is the JSON body sent to POST /v1/foods/search.
type searchRequest struct {
	Query    string `json:"query"`
	PageSize int    `json:"pageSize"`
}

// searchResponse mirrors the FoodData Central search result shape, reduced
// to the fields the catalog stores.
type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

type searchFood struct {
	FDCID        int64          `json:"fdcId"`
	Description  string         `json:"description"`
	Nutrients    []wireNutrient `json:"foodNutrients"`
	FoodPortions []wirePortion  `json:"foodPortions"`
}

type wireNutrient struct {
	NutrientID int64   `json:"nutrientId"`
	UnitName   string  `json:"unitName"`
	Value      float64 `json:"value"`
}

type wirePortion struct {
	Amount      float64 `json:"amount"`
	Modifier    string  `json:"modifier"`
	GramWeight  float64 `json:"gramWeight"`
	MeasureUnit struct {
		Name string `json:"name"`
	} `json:"measureUnit"`
}

func (c *httpClient) Search(ctx context.Context, query string) ([]*domain.Food, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body, err := json.Marshal(searchRequest{Query: query, PageSize: c.cfg.PageSize})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	endpoint := c.cfg.Endpoint + "/v1/foods/search?api_key=" + url.QueryEscape(c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The caller canceling a superseded search is not a failure mode
		// worth classifying; report it as the context error.
		if ctx.Err() != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrTimeout
			}
			return nil, ctx.Err()
		}
		if isConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrLookup, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLookup, resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrLookup, err)
	}

	foods := make([]*domain.Food, 0, len(decoded.Foods))
	for _, f := range decoded.Foods {
		foods = append(foods, f.toDomain())
	}
	return foods, nil
}

func (f searchFood) toDomain() *domain.Food {
	food := &domain.Food{
		FDCID:       f.FDCID,
		Description: f.Description,
	}
	for _, n := range f.Nutrients {
		food.Nutrients = append(food.Nutrients, domain.FoodNutrient{
			ID:     domain.NutrientID(n.NutrientID),
			Amount: n.Value,
			Unit:   n.UnitName,
		})
	}
	for _, p := range f.FoodPortions {
		food.Portions = append(food.Portions, domain.FoodPortion{
			Amount:     p.Amount,
			Unit:       p.MeasureUnit.Name,
			Modifier:   p.Modifier,
			GramWeight: p.GramWeight,
		})
	}
	// Foods without portion data still need a usable serving size.
	if len(food.Portions) == 0 {
		food.Portions = []domain.FoodPortion{{Amount: 100, Unit: "g", GramWeight: 100}}
	}
	return food
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
