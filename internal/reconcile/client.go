package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/authlink/internal/cache"
	"github.com/ppiankov/authlink/internal/mapping"
	"github.com/ppiankov/authlink/internal/model"
	"github.com/ppiankov/authlink/internal/normalize"
	"golang.org/x/time/rate"
)

// Entity is the reconciled view of an existing knowledge-base entity:
// its id and the (property, value) pairs it already carries.
type Entity struct {
	ID         string
	Statements []EntityStatement
}

// EntityStatement is one existing (property, value) pair.
type EntityStatement struct {
	PropertyID string
	Value      model.CanonicalValue
}

// Has reports whether the entity already carries the pair.
func (e *Entity) Has(propertyID string, value model.CanonicalValue) bool {
	for _, s := range e.Statements {
		if s.PropertyID == propertyID && s.Value.Equal(value) {
			return true
		}
	}
	return false
}

// Client looks up an entity by external identifier. A (nil, nil) return
// means no entity carries the identifier.
type Client interface {
	FindEntity(ctx context.Context, ref model.AuthorityReference) (*Entity, error)
}

// HTTPClient talks to a MediaWiki-API-shaped knowledge base: a
// haswbstatement search to find the entity, then a claims fetch.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	store      cache.Cache
	userAgent  string
}

// NewHTTPClient creates a client for the given api.php endpoint. The
// cache may be nil.
func NewHTTPClient(endpoint string, timeout time.Duration, userAgent string, store cache.Cache) *HTTPClient {
	return &HTTPClient{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
		store:      store,
		userAgent:  userAgent,
	}
}

// FindEntity implements Client.
func (c *HTTPClient) FindEntity(ctx context.Context, ref model.AuthorityReference) (*Entity, error) {
	property, ok := mapping.PropertyForSource(ref.SourceType)
	if !ok {
		// Sources without an identifier property cannot be reconciled.
		return nil, nil
	}

	entityID, err := c.searchEntity(ctx, property, ref.ExternalID)
	if err != nil {
		return nil, err
	}
	if entityID == "" {
		return nil, nil
	}

	statements, err := c.fetchClaims(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return &Entity{ID: entityID, Statements: statements}, nil
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

func (c *HTTPClient) searchEntity(ctx context.Context, property, externalID string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", fmt.Sprintf("haswbstatement:%s=%s", property, externalID))
	params.Set("srlimit", "1")
	params.Set("format", "json")

	body, err := c.get(ctx, params, cache.Key("lookup", property, externalID))
	if err != nil {
		return "", err
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}
	if len(resp.Query.Search) == 0 {
		return "", nil
	}
	return resp.Query.Search[0].Title, nil
}

type claimsResponse struct {
	Claims map[string][]struct {
		MainSnak struct {
			SnakType  string `json:"snaktype"`
			DataValue struct {
				Type  string          `json:"type"`
				Value json.RawMessage `json:"value"`
			} `json:"datavalue"`
		} `json:"mainsnak"`
	} `json:"claims"`
}

func (c *HTTPClient) fetchClaims(ctx context.Context, entityID string) ([]EntityStatement, error) {
	params := url.Values{}
	params.Set("action", "wbgetclaims")
	params.Set("entity", entityID)
	params.Set("format", "json")

	body, err := c.get(ctx, params, cache.Key("claims", entityID))
	if err != nil {
		return nil, err
	}
	var resp claimsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode claims response: %w", err)
	}

	var statements []EntityStatement
	for property, claims := range resp.Claims {
		for _, claim := range claims {
			if claim.MainSnak.SnakType != "value" && claim.MainSnak.SnakType != "" {
				continue
			}
			value, ok := decodeSnakValue(claim.MainSnak.DataValue.Type, claim.MainSnak.DataValue.Value)
			if !ok {
				continue
			}
			statements = append(statements, EntityStatement{PropertyID: property, Value: value})
		}
	}
	return statements, nil
}

// decodeSnakValue converts a Wikibase datavalue into our canonical value
// space. Value kinds we do not propose (quantities, coordinates) are
// skipped: they can never collide with a candidate statement.
func decodeSnakValue(typ string, raw json.RawMessage) (model.CanonicalValue, bool) {
	switch typ {
	case "string":
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return model.CanonicalValue{}, false
		}
		return model.NewExternalID(s), true

	case "monolingualtext":
		var v struct {
			Text     string `json:"text"`
			Language string `json:"language"`
		}
		if json.Unmarshal(raw, &v) != nil {
			return model.CanonicalValue{}, false
		}
		return model.NewText(v.Text, v.Language), true

	case "wikibase-entityid":
		var v struct {
			ID string `json:"id"`
		}
		if json.Unmarshal(raw, &v) != nil {
			return model.CanonicalValue{}, false
		}
		return model.NewExternalID(v.ID), true

	case "time":
		var v struct {
			Time      string `json:"time"`
			Precision int    `json:"precision"`
		}
		if json.Unmarshal(raw, &v) != nil {
			return model.CanonicalValue{}, false
		}
		return decodeWikibaseTime(v.Time, v.Precision)

	default:
		return model.CanonicalValue{}, false
	}
}

// decodeWikibaseTime parses "+1950-05-00T00:00:00Z" style timestamps,
// zeroing components below the declared precision. BCE years arrive with
// a leading minus instead of the plus.
func decodeWikibaseTime(ts string, precision int) (model.CanonicalValue, bool) {
	s := strings.TrimPrefix(ts, "+")
	bce := strings.HasPrefix(s, "-")
	date, err := normalize.Date(strings.TrimPrefix(s, "-"))
	if err != nil {
		return model.CanonicalValue{}, false
	}
	year := date.Year
	if bce {
		year = -year
	}
	switch model.DatePrecision(precision) {
	case model.PrecisionYear:
		return model.NewDate(year, 0, 0), true
	case model.PrecisionMonth:
		return model.NewDate(year, date.Month, 0), true
	default:
		return model.NewDate(year, date.Month, date.Day), true
	}
}

func (c *HTTPClient) get(ctx context.Context, params url.Values, cacheKey string) ([]byte, error) {
	if c.store != nil {
		if body, found := c.store.Get(cacheKey); found {
			return body, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8_000_000))
	if err != nil {
		return nil, fmt.Errorf("read lookup response: %w", err)
	}

	if c.store != nil {
		_ = c.store.Set(cacheKey, body, 0)
	}
	return body, nil
}
