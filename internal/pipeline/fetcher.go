package pipeline

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
	"github.com/ppiankov/authlink/internal/model"
	"github.com/ppiankov/authlink/internal/rdf"
	"github.com/ppiankov/authlink/internal/util"
	"github.com/ppiankov/authlink/internal/worker"
)

// Endpoint is one source's fetch location: a URL template with {id} and
// the serialization format the endpoint serves.
type Endpoint struct {
	URL    string
	Format rdf.Format
}

// defaultEndpoints are the machine-readable record locations of the
// built-in sources.
var defaultEndpoints = map[model.SourceType]Endpoint{
	model.SourceVIAF:  {URL: "https://viaf.org/viaf/{id}/rdf.xml", Format: rdf.FormatRDFXML},
	model.SourceGND:   {URL: "https://d-nb.info/gnd/{id}/about/lds.rdf", Format: rdf.FormatRDFXML},
	model.SourceISNI:  {URL: "https://isni.org/isni/{id}/about.rdf", Format: rdf.FormatRDFXML},
	model.SourceLOC:   {URL: "https://id.loc.gov/authorities/names/{id}.rdf", Format: rdf.FormatRDFXML},
	model.SourceBNF:   {URL: "https://data.bnf.fr/ark:/12148/cb{id}.rdf", Format: rdf.FormatRDFXML},
	model.SourceIdRef: {URL: "https://www.idref.fr/{id}.rdf", Format: rdf.FormatRDFXML},
}

// FetchResult is the raw record plus retrieval metadata. RetrievedAt
// feeds the statement references; the mapper never samples the clock.
type FetchResult struct {
	Data        []byte     `json:"data"`
	Format      rdf.Format `json:"format"`
	FinalURL    string     `json:"final_url"`
	RetrievedAt time.Time  `json:"retrieved_at"`
	FromCache   bool       `json:"-"`
}

// Fetcher retrieves raw authority records. It is the pipeline's only
// suspension point besides reconciliation: bounded by the HTTP timeout,
// rate-limited per host, and cancellable through ctx.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	endpoints  map[model.SourceType]Endpoint
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	store      cache.Cache
}

// NewFetcher builds a fetcher from configuration: built-in endpoints plus
// per-source overrides. The cache may be nil.
func NewFetcher(cfg *model.Config, store cache.Cache) (*Fetcher, error) {
	endpoints := make(map[model.SourceType]Endpoint, len(defaultEndpoints))
	for source, ep := range defaultEndpoints {
		endpoints[source] = ep
	}
	for source, override := range cfg.Sources.Endpoints {
		format, err := rdf.ParseFormat(override.Format)
		if err != nil {
			return nil, fmt.Errorf("endpoint override for %s: %w", source, err)
		}
		endpoints[model.SourceType(strings.ToUpper(source))] = Endpoint{URL: override.URL, Format: format}
	}

	var robots *util.RobotsChecker
	if cfg.HTTP.CheckRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		endpoints: endpoints,
		robots:    robots,
		limiter:   worker.NewLimiter(cfg.HTTP.RatePerHost, cfg.HTTP.RateBurst),
		store:     store,
	}, nil
}

// Fetch retrieves the raw record for one authority reference. Every
// failure here is fatal for the conversion: without bytes there is
// nothing to convert.
func (f *Fetcher) Fetch(ctx context.Context, ref model.AuthorityReference) (*FetchResult, error) {
	ep, ok := f.endpoints[ref.SourceType]
	if !ok {
		return nil, model.Errf(model.KindFetch, "no fetch endpoint for source %s", ref.SourceType)
	}
	recordURL := strings.ReplaceAll(ep.URL, "{id}", url.PathEscape(ref.ExternalID))

	cacheKey := cache.Key("record", string(ref.SourceType), ref.ExternalID)
	if f.store != nil {
		if data, found := f.store.Get(cacheKey); found {
			var cached FetchResult
			if json.Unmarshal(data, &cached) == nil {
				cached.FromCache = true
				return &cached, nil
			}
		}
	}

	if f.robots != nil {
		allowed, delay, err := f.robots.Allowed(ctx, recordURL)
		if err != nil {
			return nil, model.WrapErr(model.KindFetch, "robots check", err)
		}
		if !allowed {
			return nil, model.Errf(model.KindFetch, "robots.txt disallows %s", recordURL)
		}
		if err := f.limiter.WaitWithDelay(ctx, recordURL, delay); err != nil {
			return nil, model.WrapErr(model.KindFetch, "rate limit", err)
		}
	} else if err := f.limiter.Wait(ctx, recordURL); err != nil {
		return nil, model.WrapErr(model.KindFetch, "rate limit", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recordURL, nil)
	if err != nil {
		return nil, model.WrapErr(model.KindFetch, "create request", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rdf+xml, application/xml;q=0.9, text/plain;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, model.WrapErr(model.KindFetch, "fetch "+recordURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, model.Errf(model.KindFetch, "record not found: %s", ref)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, model.Errf(model.KindFetch, "fetch %s: unexpected status %d", recordURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, model.WrapErr(model.KindFetch, "read body", err)
	}

	result := &FetchResult{
		Data:        data,
		Format:      ep.Format,
		FinalURL:    resp.Request.URL.String(),
		RetrievedAt: time.Now().UTC(),
	}

	if f.store != nil {
		if envelope, err := json.Marshal(result); err == nil {
			_ = f.store.Set(cacheKey, envelope, 0)
		}
	}
	return result, nil
}

// Endpoints exposes the effective endpoint table for the sources command.
func (f *Fetcher) Endpoints() map[model.SourceType]Endpoint {
	return f.endpoints
}
