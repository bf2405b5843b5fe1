package availability

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// flagYes is how the provider encodes a true boolean; anything else,
// including an absent field, is false.
const flagYes = "Y"

const (
	requestTimeout = 5 * time.Second

	// Outbound politeness cap towards the provider, shared across all
	// in-flight requests of this process.
	outboundRate  = 20
	outboundBurst = 20
)

// Client queries the availability provider's bookExist endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authKey    string
	limiter    *rate.Limiter
}

// NewClient creates an availability client for the provider at baseURL.
func NewClient(baseURL, authKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		authKey:    authKey,
		limiter:    rate.NewLimiter(rate.Limit(outboundRate), outboundBurst),
	}
}

func (c *Client) Check(ctx context.Context, isbn, libraryCode string) (bool, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, false, fmt.Errorf("availability provider: %w", err)
	}

	params := url.Values{}
	params.Set("authKey", c.authKey)
	params.Set("libCode", libraryCode)
	params.Set("isbn13", isbn)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return false, false, fmt.Errorf("availability provider: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, false, fmt.Errorf("availability provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, false, fmt.Errorf("availability provider: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Response struct {
			Result struct {
				HasBook       string `json:"hasBook"`
				LoanAvailable string `json:"loanAvailable"`
			} `json:"result"`
		} `json:"response"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, false, fmt.Errorf("availability provider: decode response: %w", err)
	}

	result := payload.Response.Result

	return result.HasBook == flagYes, result.LoanAvailable == flagYes, nil
}

// Compile-time check.
var _ Checker = (*Client)(nil)
