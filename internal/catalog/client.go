package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mholtz/cabfetch/internal/models"
	"github.com/mholtz/cabfetch/internal/utils"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the archive.org endpoint
const DefaultBaseURL = "https://archive.org"

// downloadChunkSize is the read buffer used when streaming files to disk
const downloadChunkSize = 8192

// ArcadeCollections are the collections searched when none is specified
var ArcadeCollections = []string{
	"MAME_0.139_ROMS_(arcade_only)",
	"MAME_0.37b5_ROMs_(MAME_2000)",
	"MAME_2003_Reference_Set_MAME_0.78_ROMs",
	"MAME_0.151_Software_List_ROMs_(CHDs)",
	"FinalBurn_Neo_-_Arcade_Games",
}

// Client queries the archive's search and metadata APIs and streams downloads
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client against the default archive endpoint
func NewClient() *Client {
	return NewClientWithBaseURL(DefaultBaseURL)
}

// NewClientWithBaseURL creates a catalog client against a specific endpoint
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Search queries the archive for items matching query, sorted by descending
// download count. When collection is empty the fixed arcade collection set is
// searched. Any request failure is logged and degrades to an empty result
// set; callers cannot distinguish "no matches" from "request failed".
func (c *Client) Search(ctx context.Context, query, collection string, maxResults int) []SearchResult {
	searchQuery := fmt.Sprintf("(%s)", query)
	if collection != "" {
		searchQuery += fmt.Sprintf(" AND collection:(%s)", collection)
	} else {
		searchQuery += fmt.Sprintf(" AND collection:(%s)", strings.Join(ArcadeCollections, " OR "))
	}

	params := url.Values{}
	params.Set("q", searchQuery)
	for _, field := range []string{"identifier", "title", "downloads", "item_size", "publicdate"} {
		params.Add("fl[]", field)
	}
	params.Set("rows", strconv.Itoa(maxResults))
	params.Set("output", "json")
	params.Add("sort[]", "downloads desc")

	searchURL := c.baseURL + "/advancedsearch.php?" + params.Encode()

	var envelope searchResponse
	if err := c.getJSON(ctx, searchURL, &envelope); err != nil {
		logrus.Warnf("Search failed: %v", err)
		return nil
	}
	return envelope.Response.Docs
}

// ListFiles fetches the file listing of one archive item. Failures follow the
// same degrade-to-empty policy as Search.
func (c *Client) ListFiles(ctx context.Context, identifier string) []FileEntry {
	metadataURL := c.baseURL + "/metadata/" + identifier

	var envelope metadataResponse
	if err := c.getJSON(ctx, metadataURL, &envelope); err != nil {
		logrus.Warnf("Failed to get item files: %v", err)
		return nil
	}
	return envelope.Files
}

// DownloadURL constructs the direct download URL for a file in an item
func (c *Client) DownloadURL(identifier, filename string) string {
	return c.baseURL + "/download/" + identifier + "/" + filename
}

// Download streams rawURL to localPath in fixed-size chunks, creating parent
// directories as needed. Progress events are emitted through progress when
// non-nil. A failed download removes the partially written file.
func (c *Client) Download(ctx context.Context, rawURL, localPath string, progress models.ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &models.CabFetchError{Type: models.ErrCatalog, Item: rawURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.CabFetchError{Type: models.ErrCatalog, Item: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &models.CabFetchError{
			Type: models.ErrCatalog,
			Item: rawURL,
			Err:  fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	if err := utils.EnsureDir(filepath.Dir(localPath)); err != nil {
		return &models.CabFetchError{Type: models.ErrFileOp, Item: localPath, Err: err}
	}

	out, err := os.Create(localPath)
	if err != nil {
		return &models.CabFetchError{Type: models.ErrFileOp, Item: localPath, Err: err}
	}

	name := filepath.Base(localPath)
	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	if err := copyChunks(out, resp.Body, name, total, progress); err != nil {
		out.Close()
		// Remove the partial file; a half-written ROM is worse than none.
		if rmErr := utils.RemoveIfExists(localPath); rmErr != nil {
			logrus.Warnf("Failed to remove partial download %s: %v", localPath, rmErr)
		}
		return &models.CabFetchError{Type: models.ErrCatalog, Item: rawURL, Err: err}
	}

	if err := out.Close(); err != nil {
		return &models.CabFetchError{Type: models.ErrFileOp, Item: localPath, Err: err}
	}

	logrus.Debugf("Downloaded %s to %s", rawURL, localPath)
	return nil
}

// copyChunks copies src to dst in downloadChunkSize reads, reporting progress
func copyChunks(dst io.Writer, src io.Reader, name string, total int64, progress models.ProgressFunc) error {
	buf := make([]byte, downloadChunkSize)
	var written int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return err
			}
			written += int64(n)
			if progress != nil {
				progress(name, total, written)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

// getJSON performs a GET and decodes the JSON body into target
func (c *Client) getJSON(ctx context.Context, rawURL string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
