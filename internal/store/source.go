package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	apperrors "pvpulse/internal/errors"
)

// Source is where the raw observation CSV comes from. Open returns a reader
// over the CSV bytes; the caller closes it.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// FileSource reads the CSV from the local filesystem.
type FileSource struct {
	Path string
}

// Open opens the underlying file.
func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError(s.Path, err)
	}
	return f, nil
}

// Name identifies the source for logging and single-flight keying.
func (s FileSource) Name() string {
	return s.Path
}

// HTTPSource fetches the CSV from a remote URL.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

// Open issues the GET and returns the response body on 200.
func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		// The body outlives this call; tie cancellation to body close below.
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
		if err != nil {
			cancel()
			return nil, apperrors.NewDataUnavailableError(s.URL, err)
		}
		resp, err := client.Do(req)
		if err != nil {
			cancel()
			return nil, apperrors.NewDataUnavailableError(s.URL, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			cancel()
			return nil, apperrors.NewDataUnavailableError(s.URL, fmt.Errorf("unexpected status %d", resp.StatusCode))
		}
		return &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError(s.URL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError(s.URL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, apperrors.NewDataUnavailableError(s.URL, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return resp.Body, nil
}

// Name identifies the source for logging and single-flight keying.
func (s HTTPSource) Name() string {
	return s.URL
}

// cancelReadCloser releases the request context when the body is closed.
type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
