package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/cenkalti/backoff/v5"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"bpmsetup/internal/logging"
)

const defaultMaxDownloadTries = 3

type httpStatusError struct {
	status int
	url    string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.url, e.status)
}

// download fetches the installer into a fresh temporary directory and
// returns the artifact path. Transient failures are retried with
// exponential backoff; 4xx responses are terminal.
func (a *Acquirer) download(ctx context.Context, rawURL string) (string, error) {
	dir, err := os.MkdirTemp("", "bpmsetup-*")
	if err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}
	dest := filepath.Join(dir, fileNameFromURL(rawURL))

	operation := func() (string, error) {
		if err := a.fetch(ctx, rawURL, dest); err != nil {
			var statusErr *httpStatusError
			if errors.As(err, &statusErr) && statusErr.status >= 400 && statusErr.status < 500 {
				return "", backoff.Permanent(err)
			}
			a.logger.Warn("download attempt failed", logging.Error(err))
			return "", err
		}
		return dest, nil
	}

	artifact, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(a.maxDownloadTries),
	)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}
	return artifact, nil
}

func (a *Acquirer) fetch(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &httpStatusError{status: resp.StatusCode, url: rawURL}
	}

	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer file.Close()

	bar := newDownloadBar(resp.ContentLength, filepath.Base(dest))
	if _, err := io.Copy(io.MultiWriter(file, bar), resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return file.Close()
}

func newDownloadBar(size int64, name string) *progressbar.ProgressBar {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return progressbar.DefaultBytes(size, "downloading "+name)
	}
	return progressbar.DefaultBytesSilent(size)
}

func fileNameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "installer"
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "installer"
	}
	return name
}
