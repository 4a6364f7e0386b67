package docgen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/bps3210/simkak/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const docxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var googleDocPattern = regexp.MustCompile(`^https://docs\.google\.com/document/d/([A-Za-z0-9_-]+)`)

// ExternalFetcher downloads a template from a document host.
type ExternalFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// DocumentId extracts the document identifier of a Google Docs URL.
func DocumentId(ref string) (string, bool) {
	m := googleDocPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExportURL rewrites a Google Docs view or edit URL into its .docx export URL.
// Other URLs are returned unchanged.
func ExportURL(ref string) string {
	id, ok := DocumentId(ref)
	if !ok {
		return ref
	}
	return fmt.Sprintf("https://docs.google.com/document/d/%s/export?format=docx", id)
}

type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	url := ExportURL(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		log.Warnf("Failed to fetch external template %s: %v", url, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document host returned non-OK status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// DriveExporter exports Google Docs through the Drive API and falls back to plain HTTP for other URLs.
type DriveExporter struct {
	service  *drive.Service
	fallback ExternalFetcher
}

func (d *DriveExporter) Fetch(ctx context.Context, ref string) ([]byte, error) {
	id, ok := DocumentId(ref)
	if !ok {
		return d.fallback.Fetch(ctx, ref)
	}
	resp, err := d.service.Files.Export(id, docxMimeType).Context(ctx).Download()
	if err != nil {
		err := fmt.Errorf("drive export of %s failed: %v", id, err)
		log.Warn(err)
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// NewExternalFetcher uses the Drive API when credentials or an API key are configured
// and plain HTTP export otherwise.
func NewExternalFetcher(ctx context.Context, cfg config.Templates) (ExternalFetcher, error) {
	httpFetcher := NewHTTPFetcher(cfg.Timeout)

	var opts []option.ClientOption
	switch {
	case cfg.DriveCredentialsFile != "":
		credentialsJSON, err := os.ReadFile(cfg.DriveCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read drive credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, drive.DriveReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse drive credentials: %w", err)
		}
		client := oauth2.NewClient(ctx, creds.TokenSource)
		client.Timeout = cfg.Timeout
		opts = append(opts, option.WithHTTPClient(client))
	case cfg.DriveApiKey != "":
		opts = append(opts, option.WithAPIKey(cfg.DriveApiKey))
	default:
		return httpFetcher, nil
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		err := fmt.Errorf("unable to create Drive client: %v", err)
		log.Error(err)
		return nil, err
	}
	log.Info("External templates are exported through the Drive API")
	return &DriveExporter{service: service, fallback: httpFetcher}, nil
}
