package canteenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/upload"
)

const maxErrorBody = 2048

// Client talks to the canteen REST API on behalf of the browser, forwarding its access token.
type Client struct {
	rest    *RESTClient
	timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	return &Client{rest: NewRESTClient(baseURL, timeout, httpClient), timeout: timeoutOrDefault(timeout)}
}

// multipartBody is a prepared form upload.
type multipartBody struct {
	contentType string
	payload     *bytes.Buffer
}

func newMultipart(fields map[string]string, fileField string, file *upload.File) (*multipartBody, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", key, err)
		}
	}
	if !file.Empty() {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Filename))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}
	return &multipartBody{contentType: writer.FormDataContentType(), payload: buf}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

func (c *Client) newRequest(ctx context.Context, token, method, endpoint string, query url.Values, body any) (*http.Request, error) {
	var reader io.Reader
	contentType := "application/json"
	switch typed := body.(type) {
	case nil:
	case *multipartBody:
		reader = typed.payload
		contentType = typed.contentType
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.rest.NewRequest(ctx, method, endpoint, query, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)
	if trimmed := strings.TrimSpace(token); trimmed != "" {
		req.Header.Set("Authorization", "Bearer "+trimmed)
	}
	return req, nil
}

// call performs one request and decodes the envelope's data into out.
func (c *Client) call(ctx context.Context, token, method, endpoint string, query url.Values, body, out any) (*Envelope, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := c.newRequest(ctx, token, method, endpoint, query, body)
	if err != nil {
		slog.Error("canteen api request build failed", slog.String("method", method), slog.String("path", endpoint), slog.Any("error", err))
		return nil, err
	}
	slog.Debug("canteen api request", slog.String("method", method), slog.String("url", req.URL.String()))

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("canteen api request error", slog.String("method", method), slog.String("path", endpoint), slog.Any("error", err))
		return nil, fmt.Errorf("canteen api %s %s: %w", method, endpoint, err)
	}
	defer res.Body.Close()
	slog.Debug("canteen api response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read canteen api response: %w", err)
	}

	var envelope Envelope
	if len(bytes.TrimSpace(raw)) == 0 && res.StatusCode < http.StatusBadRequest {
		envelope.normalize(res.StatusCode)
		return &envelope, nil
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if res.StatusCode >= http.StatusBadRequest {
			logUnexpected(method, req.URL.String(), res.StatusCode, raw)
			return nil, apierr.New(res.StatusCode, http.StatusText(res.StatusCode))
		}
		return nil, fmt.Errorf("decode canteen api envelope: %w", err)
	}
	envelope.normalize(res.StatusCode)

	if envelope.failed(res.StatusCode) {
		apiErr := envelope.asError(res.StatusCode)
		if apiErr.StatusCode >= http.StatusInternalServerError {
			logUnexpected(method, req.URL.String(), apiErr.StatusCode, raw)
		} else {
			slog.Info("canteen api rejected request", slog.String("method", method), slog.String("path", endpoint), slog.Int("status", apiErr.StatusCode), slog.Any("messages", apiErr.Messages))
		}
		return &envelope, apiErr
	}

	if err := envelope.decodeData(out); err != nil {
		return &envelope, fmt.Errorf("decode canteen api data for %s: %w", endpoint, err)
	}
	return &envelope, nil
}

// download fetches a non-JSON resource such as a PDF receipt.
func (c *Client) download(ctx context.Context, token, endpoint string) ([]byte, string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := c.newRequest(ctx, token, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/pdf, application/octet-stream")

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("canteen api download error", slog.String("path", endpoint), slog.Any("error", err))
		return nil, "", fmt.Errorf("canteen api GET %s: %w", endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		var envelope Envelope
		if json.Unmarshal(raw, &envelope) == nil {
			envelope.normalize(res.StatusCode)
			return nil, "", envelope.asError(res.StatusCode)
		}
		logUnexpected(http.MethodGet, req.URL.String(), res.StatusCode, raw)
		return nil, "", apierr.New(res.StatusCode, http.StatusText(res.StatusCode))
	}

	content, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read download: %w", err)
	}
	return content, res.Header.Get("Content-Type"), nil
}

func logUnexpected(method, target string, status int, body []byte) {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	slog.Error("canteen api unexpected status", slog.String("method", method), slog.Int("status", status), slog.String("url", target), slog.String("body", strings.TrimSpace(string(body))))
}
