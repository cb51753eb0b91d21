package ai

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/docuintel/docuintel/internal/core/domain"
	"github.com/docuintel/docuintel/internal/infrastructure/resilience"
)

// Client talks to the document AI service over HTTP. Summarization and
// classification are independent calls issued in parallel; each one degrades
// to a fixed fallback value on a service-level failure, so only a transport
// failure reaches the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	CallsPerSecond     float64
	Burst              int
	ResilienceExecutor *resilience.Executor
}

func New(baseURL string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	callsPerSecond := options.CallsPerSecond
	if callsPerSecond <= 0 {
		callsPerSecond = 5
	}
	burst := options.Burst
	if burst <= 0 {
		burst = 10
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(callsPerSecond), burst),
		executor:   options.ResilienceExecutor,
	}
}

type textRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

type classifyResponse struct {
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
}

// SummarizeAndClassify fans out to /summarize and /classify and joins on
// both. The join never fails because one side degraded; it fails only when a
// call could not reach the service at all.
func (c *Client) SummarizeAndClassify(ctx context.Context, text string) (domain.Outcome, error) {
	var (
		wg          sync.WaitGroup
		summary     string
		summaryErr  error
		classified  classifyResponse
		classifyErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		summary, summaryErr = c.summarize(ctx, text)
	}()
	go func() {
		defer wg.Done()
		classified, classifyErr = c.classify(ctx, text)
	}()
	wg.Wait()

	if summaryErr != nil {
		return domain.Outcome{}, domain.WrapError(domain.ErrAIUnavailable, "summarize", summaryErr)
	}
	if classifyErr != nil {
		return domain.Outcome{}, domain.WrapError(domain.ErrAIUnavailable, "classify", classifyErr)
	}

	return domain.Outcome{
		Summary:        summary,
		Classification: classified.Classification,
		Confidence:     classified.Confidence,
	}, nil
}

// summarize returns the fixed fallback summary on a degradable failure and
// an error only when the transport itself is unreachable.
func (c *Client) summarize(ctx context.Context, text string) (string, error) {
	var response summarizeResponse
	err := c.call(ctx, "ai.summarize", "/summarize", textRequest{Text: text}, &response)
	if err != nil {
		if isDegradable(err) {
			return domain.SummaryNotAvailable, nil
		}
		return "", err
	}
	return response.Summary, nil
}

func (c *Client) classify(ctx context.Context, text string) (classifyResponse, error) {
	var response classifyResponse
	err := c.call(ctx, "ai.classify", "/classify", textRequest{Text: text}, &response)
	if err != nil {
		if isDegradable(err) {
			return classifyResponse{Classification: domain.FolderUnclassified, Confidence: 0}, nil
		}
		return classifyResponse{}, err
	}
	return response, nil
}

// call issues exactly one attempt per invocation; the executor contributes
// the circuit breaker, not retries.
func (c *Client) call(ctx context.Context, operation, path string, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	doCall := func(callCtx context.Context) error {
		return c.postJSON(callCtx, path, payload, out, operation)
	}
	if c.executor != nil {
		return c.executor.Execute(ctx, operation, doCall, classifyAIError)
	}
	return doCall(ctx)
}
