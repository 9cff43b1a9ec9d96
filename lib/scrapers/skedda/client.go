package skedda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"syres/lib/telemetry"
)

var tracer = otel.Tracer("scrapers/skedda")

const DefaultBaseUrl = "https://switchyards.skedda.com"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// CookiePolicy selects how the session cookie set by the booking page
// is replayed on the follow-up catalog request. Exactly one policy is
// active for the lifetime of a Client; policies are never mixed.
type CookiePolicy int

const (
	// CookiePolicyJar keeps a client-scoped cookie jar so every cookie
	// set by a prior response is replayed automatically. Token and
	// cookie always come from the same exchange by construction. This
	// is the default and the only policy meant for production use.
	CookiePolicyJar CookiePolicy = iota
	// CookiePolicyHarvest re-sends every Set-Cookie value from the
	// session-establishing response as one Cookie header. Debug only.
	CookiePolicyHarvest
	// CookiePolicySingle replays only the named verification cookie
	// from the establishing response. Strictly weaker than harvest;
	// retained for diagnosing cookie/token pairing issues.
	CookiePolicySingle
)

func ParseCookiePolicy(s string) (CookiePolicy, error) {
	switch s {
	case "", "jar":
		return CookiePolicyJar, nil
	case "harvest":
		return CookiePolicyHarvest, nil
	case "single":
		return CookiePolicySingle, nil
	}
	return CookiePolicyJar, fmt.Errorf("unknown cookie policy: %q", s)
}

// Session is the authenticated request context produced by
// EstablishSession. The token and the cookies originate from the same
// HTTP exchange; the value is immutable once returned.
type Session struct {
	BookingUrl string
	Token      string
	Cookies    []*http.Cookie
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	policy  CookiePolicy
}

type ClientOptions struct {
	BaseUrl      string
	CookiePolicy CookiePolicy
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	if opts.CookiePolicy == CookiePolicyJar {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		client.SetCookieJar(jar)
	} else {
		// the debug policies replay cookies by hand, a jar would
		// silently mix strategies within one session
		client.SetCookieJar(nil)
	}

	telemetry.InstrumentResty(client, "scrapers/skedda/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
		policy:  opts.CookiePolicy,
	}
	return c, nil
}

// EstablishSession fetches the booking page, extracts the request
// verification token and captures the cookies set alongside it.
func (c *Client) EstablishSession(ctx context.Context) (Session, error) {
	ctx, span := tracer.Start(ctx, "client:EstablishSession")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/booking")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch booking page")
		return Session{}, NetworkError{Err: err}
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "booking page returned an error status")
		return Session{}, StatusError{Code: res.StatusCode()}
	}

	token, err := ExtractToken(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to find verification token")
		return Session{}, err
	}

	return Session{
		BookingUrl: c.BaseUrl.JoinPath("booking").String(),
		Token:      token,
		Cookies:    res.Cookies(),
	}, nil
}

// FetchCatalog performs the authenticated request against /webs and
// decodes the venue catalog.
func (c *Client) FetchCatalog(ctx context.Context, session Session) (Catalog, error) {
	ctx, span := tracer.Start(ctx, "client:FetchCatalog")
	defer span.End()

	req := c.Http.R().
		SetContext(ctx).
		SetHeader(TokenHeader, session.Token).
		SetHeader("Accept", "application/json").
		SetHeader("Referer", session.BookingUrl)

	switch c.policy {
	case CookiePolicyJar:
		// the jar replays everything on its own
	case CookiePolicyHarvest:
		req.SetHeader("Cookie", joinCookies(session.Cookies))
	case CookiePolicySingle:
		cookie := findCookie(session.Cookies, VerificationCookie)
		if cookie == nil {
			span.SetStatus(codes.Error, "verification cookie missing from session")
			return Catalog{}, fmt.Errorf("session did not set cookie %q", VerificationCookie)
		}
		req.SetHeader("Cookie", cookie.Name+"="+cookie.Value)
	}

	res, err := req.Get("/webs")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch catalog")
		return Catalog{}, NetworkError{Err: err}
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "catalog returned an error status")
		return Catalog{}, StatusError{Code: res.StatusCode()}
	}

	var catalog Catalog
	err = json.Unmarshal(res.Body(), &catalog)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog body is not valid json")
		return Catalog{}, DecodeError{Err: err}
	}
	return catalog, nil
}

// LocationSpaces runs the full pipeline: establish a session, fetch
// the catalog and resolve the location name to its space ids. A
// location with no matching tag yields an empty slice, not an error.
func (c *Client) LocationSpaces(ctx context.Context, location string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "client:LocationSpaces")
	defer span.End()

	session, err := c.EstablishSession(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := c.FetchCatalog(ctx, session)
	if err != nil {
		return nil, err
	}
	return catalog.ResolveSpaceIds(location), nil
}

func joinCookies(cookies []*http.Cookie) string {
	pairs := make([]string, len(cookies))
	for i, cookie := range cookies {
		pairs[i] = cookie.Name + "=" + cookie.Value
	}
	return strings.Join(pairs, "; ")
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
