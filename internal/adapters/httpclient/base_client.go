package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookhub_loan_service/internal/apperrors"
	"github.com/SscSPs/bookhub_loan_service/internal/middleware"
	jsoniter "github.com/json-iterator/go"
)

// json matches encoding/json semantics, including case-insensitive field names.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorBody bounds how much of an error response is read for logging.
const maxErrorBody = 1 << 12

// baseClient issues JSON requests against one remote service.
type baseClient struct {
	service string
	baseURL string
	http    *http.Client
}

// do sends the request and returns the response status. On 2xx the body is
// decoded into out when out is non-nil. Transport failures are reported as
// apperrors.ErrRemoteUnreachable, cancellation as the context error.
func (c *baseClient) do(ctx context.Context, method, path string, out any) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("remote_service", c.service),
		slog.String("remote_method", method),
		slog.String("remote_path", path),
	)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build %s request: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		logger.Warn("Remote call failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("%w: %s: %v", apperrors.ErrRemoteUnreachable, c.service, err)
	}
	defer resp.Body.Close()

	logger.Debug("Remote call completed", slog.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode >= 500 {
			logger.Warn("Remote service error", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		}
		return resp.StatusCode, nil
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: %s: invalid response body: %v", apperrors.ErrRemoteUnreachable, c.service, err)
		}
	}
	return resp.StatusCode, nil
}

// unexpectedStatus is the error for a status the caller has no mapping for.
func (c *baseClient) unexpectedStatus(status int) error {
	return fmt.Errorf("%w: %s responded with status %d", apperrors.ErrRemoteUnreachable, c.service, status)
}
