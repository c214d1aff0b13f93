package runner

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kyrosle/xdiff/packages/core/args"
	"github.com/kyrosle/xdiff/packages/core/profile"
	"github.com/kyrosle/xdiff/packages/diff"
	"github.com/kyrosle/xdiff/packages/http"
	"github.com/kyrosle/xdiff/packages/response"
)

type Runner struct {
	client *http.Client
	logger *log.Logger
	config *Config
}

type Config struct {
	Timeout     time.Duration
	ValidateSSL bool
	Proxy       string
	// Logger receives verbose diagnostics. Nil discards them.
	Logger *log.Logger
}

func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{ValidateSSL: true}
	}

	clientOpts := []http.ClientOption{http.WithValidateSSL(cfg.ValidateSSL)}
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, http.WithTimeout(cfg.Timeout))
	}
	if cfg.Proxy != "" {
		clientOpts = append(clientOpts, http.WithProxy(cfg.Proxy))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Runner{
		client: http.NewClient(clientOpts...),
		logger: logger,
		config: cfg,
	}
}

// DiffResult holds both normalised responses and their unified diff.
// Diff is empty when the two texts are identical.
type DiffResult struct {
	Text1 string
	Text2 string
	Diff  string
}

// RequestResult is a single response rendered for display.
type RequestResult struct {
	URL      string
	Status   string
	Headers  string
	Body     string
	Response *http.Response
}

// Send resolves p with a and performs the round trip.
func (r *Runner) Send(ctx context.Context, p *profile.RequestProfile, a args.Args) (*http.Response, error) {
	resolved, err := p.Generate(a)
	if err != nil {
		return nil, err
	}

	req := http.NewRequest(resolved.Method, resolved.URL).
		SetHeaders(resolved.Headers).
		SetBody(resolved.Body)

	r.logger.Printf("%s %s", req.Method, req.URL)
	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	r.logger.Printf("%s %s -> %d (%dms)", req.Method, req.URL, resp.StatusCode, resp.DurationMs())
	return resp, nil
}

// Diff validates both requests, sends them concurrently and diffs the
// normalised responses. A failure on either side aborts the whole diff.
func (r *Runner) Diff(ctx context.Context, p *profile.DiffProfile, a args.Args) (*DiffResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var text1, text2 string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := r.fetch(gctx, &p.Req1, a, p.Res)
		if err != nil {
			return fmt.Errorf("%s: %w", diff.LabelReq1, err)
		}
		text1 = text
		return nil
	})
	g.Go(func() error {
		text, err := r.fetch(gctx, &p.Req2, a, p.Res)
		if err != nil {
			return fmt.Errorf("%s: %w", diff.LabelReq2, err)
		}
		text2 = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DiffResult{
		Text1: text1,
		Text2: text2,
		Diff:  diff.Text(text1, text2),
	}, nil
}

func (r *Runner) fetch(ctx context.Context, p *profile.RequestProfile, a args.Args, res profile.ResponseProfile) (string, error) {
	resp, err := r.Send(ctx, p, a)
	if err != nil {
		return "", err
	}
	return response.Normalize(resp, res)
}

// Request sends a single profile and renders the unfiltered response.
func (r *Runner) Request(ctx context.Context, p *profile.RequestProfile, a args.Args) (*RequestResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	u, err := p.ResolvedURL(a)
	if err != nil {
		return nil, err
	}

	resp, err := r.Send(ctx, p, a)
	if err != nil {
		return nil, err
	}

	body, err := response.BodyText(resp, nil)
	if err != nil {
		return nil, err
	}

	return &RequestResult{
		URL:      u,
		Status:   response.StatusText(resp),
		Headers:  response.HeaderText(resp, nil),
		Body:     body,
		Response: resp,
	}, nil
}
