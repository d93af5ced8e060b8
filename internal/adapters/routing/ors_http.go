package routing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"trip-planner-service/internal/domain"
)

const upstreamService = "openrouteservice"

func (o *ORSRouteProvider) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends req once and returns the response body. Any non-2xx status
// becomes an UpstreamError carrying the raw body.
func (o *ORSRouteProvider) do(op string, req *http.Request) (_ []byte, err error) {
	start := time.Now()
	defer func() { o.observe(op, err, time.Since(start)) }()

	resp, err := o.session.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", op, ctxErr)
		}
		return nil, &domain.UpstreamError{
			Service: upstreamService,
			Msg:     fmt.Sprintf("%s request failed: %v", op, err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{
			Service:    upstreamService,
			Msg:        fmt.Sprintf("%s read response: %v", op, err),
			StatusCode: resp.StatusCode,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Service:    upstreamService,
			Msg:        fmt.Sprintf("%s returned unexpected status", op),
			StatusCode: resp.StatusCode,
			Raw:        body,
		}
	}

	return body, nil
}
