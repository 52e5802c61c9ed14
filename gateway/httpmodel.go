package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/faults"
	"github.com/lexkit/lexsync/lexmodel"
	"github.com/lexkit/lexsync/resource"
)

// HTTPModelClient speaks the remote service's REST surface using the route
// table declared alongside each operation schema. Authentication is supplied
// by the caller through the http.Client transport.
type HTTPModelClient struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewHTTPModelClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *HTTPModelClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPModelClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log.With().Str("component", "http-model-client").Logger(),
	}
}

func (c *HTTPModelClient) Invoke(ctx context.Context, operation string, params resource.Props) (resource.Props, error) {
	op, err := lexmodel.Lookup(operation)
	if err != nil {
		return nil, err
	}

	path, consumed, err := expandRoutePath(op.Route.Path, params)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if op.Route.Method == http.MethodPut || op.Route.Method == http.MethodPost {
		payload := make(resource.Props, len(params))
		for key, value := range params {
			if _, inPath := consumed[key]; inPath {
				continue
			}
			payload[key] = value
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, faults.NewTypedError(faults.InternalError, "encode request payload", err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, op.Route.Method, c.baseURL+path, body)
	if err != nil {
		return nil, faults.NewTypedError(faults.InternalError, "build request", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, faults.NewTypedError(faults.TransportError, fmt.Sprintf("invoke %s", operation), err)
	}
	defer func() { _ = response.Body.Close() }()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, faults.NewTypedError(faults.TransportError, fmt.Sprintf("read %s response", operation), err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return nil, statusCodeError(operation, response.StatusCode, raw)
	}

	decoded := resource.Props{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, faults.NewTypedError(faults.TransportError, fmt.Sprintf("decode %s response", operation), err)
		}
	}
	return decoded, nil
}

func expandRoutePath(template string, params resource.Props) (string, map[string]struct{}, error) {
	consumed := make(map[string]struct{})
	segments := strings.Split(template, "/")
	for idx, segment := range segments {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}
		name := segment[1 : len(segment)-1]
		value := resource.String(params, name)
		if value == "" {
			return "", nil, faults.NewTypedError(
				faults.ValidationError,
				fmt.Sprintf("missing path parameter %q", name),
				nil,
			)
		}
		segments[idx] = url.PathEscape(value)
		consumed[name] = struct{}{}
	}
	return strings.Join(segments, "/"), consumed, nil
}

func statusCodeError(operation string, statusCode int, body []byte) error {
	message := fmt.Sprintf("%s returned status %d", operation, statusCode)
	if summary := errorSummary(body); summary != "" {
		message += ": " + summary
	}

	var category faults.ErrorCategory
	switch statusCode {
	case http.StatusNotFound:
		category = faults.NotFoundError
	case http.StatusTooManyRequests:
		category = faults.ThrottlingError
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		category = faults.ValidationError
	case http.StatusConflict, http.StatusPreconditionFailed:
		category = faults.ConflictError
	default:
		category = faults.TransportError
	}
	return faults.NewTypedError(category, message, nil)
}

func errorSummary(body []byte) string {
	var decoded struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return ""
	}
	return decoded.Message
}
