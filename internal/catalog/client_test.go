package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSearchBuildsQueryAndParsesResults(t *testing.T) {
	var gotQuery, gotRows, gotSort string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/advancedsearch.php" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		gotRows = r.URL.Query().Get("rows")
		gotSort = r.URL.Query().Get("sort[]")
		w.Write([]byte(`{"response":{"docs":[
			{"identifier":"sf2","title":"Street Fighter II","downloads":1234,"item_size":987654,"publicdate":"2020-01-01"},
			{"identifier":"mk","title":"Mortal Kombat","downloads":400,"item_size":12345,"publicdate":"2021-05-05"}
		]}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	results := client.Search(context.Background(), "street fighter", "", 20)

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Identifier != "sf2" || results[0].Downloads != 1234 {
		t.Errorf("Unexpected first result: %+v", results[0])
	}
	if !strings.HasPrefix(gotQuery, "(street fighter) AND collection:(") {
		t.Errorf("Query = %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "FinalBurn_Neo_-_Arcade_Games") {
		t.Errorf("Default collections missing from query: %q", gotQuery)
	}
	if gotRows != "20" {
		t.Errorf("rows = %q, expected 20", gotRows)
	}
	if gotSort != "downloads desc" {
		t.Errorf("sort = %q, expected descending downloads", gotSort)
	}
}

func TestSearchWithExplicitCollection(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"response":{"docs":[]}}`))
	}))
	defer server.Close()

	NewClientWithBaseURL(server.URL).Search(context.Background(), "pacman", "MAME_2003_Reference_Set_MAME_0.78_ROMs", 5)

	expected := "(pacman) AND collection:(MAME_2003_Reference_Set_MAME_0.78_ROMs)"
	if gotQuery != expected {
		t.Errorf("Query = %q, expected %q", gotQuery, expected)
	}
}

func TestSearchFailureDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	results := NewClientWithBaseURL(server.URL).Search(context.Background(), "anything", "", 10)
	if len(results) != 0 {
		t.Errorf("Expected empty results on server error, got %d", len(results))
	}

	// Unreachable endpoint degrades the same way
	server.Close()
	results = NewClientWithBaseURL(server.URL).Search(context.Background(), "anything", "", 10)
	if len(results) != 0 {
		t.Errorf("Expected empty results on transport error, got %d", len(results))
	}
}

func TestListFilesParsesStringSizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/metadata/sf2" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"files":[
			{"name":"sf2.zip","size":"524288"},
			{"name":"notes.txt","size":"oops"}
		]}`))
	}))
	defer server.Close()

	files := NewClientWithBaseURL(server.URL).ListFiles(context.Background(), "sf2")
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}
	if files[0].SizeBytes() != 524288 {
		t.Errorf("SizeBytes = %d, expected 524288", files[0].SizeBytes())
	}
	if files[1].SizeBytes() != 0 {
		t.Errorf("Unparseable size should be 0, got %d", files[1].SizeBytes())
	}
}

func TestListFilesFailureDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	files := NewClientWithBaseURL(server.URL).ListFiles(context.Background(), "missing")
	if len(files) != 0 {
		t.Errorf("Expected empty files on error, got %d", len(files))
	}
}

func TestDownloadURLIsPure(t *testing.T) {
	client := NewClientWithBaseURL("https://archive.example")
	url := client.DownloadURL("sf2", "sf2.zip")
	if url != "https://archive.example/download/sf2/sf2.zip" {
		t.Errorf("DownloadURL = %q", url)
	}
}

func TestDownloadStreamsToDiskWithProgress(t *testing.T) {
	payload := strings.Repeat("x", 20000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "nested", "dir", "rom.zip")

	var events int
	var lastSent int64
	progress := func(name string, total, sent int64) {
		if name != "rom.zip" {
			t.Errorf("Progress name = %q, expected rom.zip", name)
		}
		events++
		lastSent = sent
	}

	client := NewClientWithBaseURL(server.URL)
	if err := client.Download(context.Background(), server.URL+"/file", dest, progress); err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if len(data) != len(payload) {
		t.Errorf("Downloaded %d bytes, expected %d", len(data), len(payload))
	}
	if events < 2 {
		t.Errorf("Expected chunked progress events, got %d", events)
	}
	if lastSent != int64(len(payload)) {
		t.Errorf("Final progress sent = %d, expected %d", lastSent, len(payload))
	}
}

func TestDownloadErrorStatusLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "rom.zip")
	err := NewClientWithBaseURL(server.URL).Download(context.Background(), server.URL+"/file", dest, nil)
	if err == nil {
		t.Fatal("Expected error for 404")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("No file should exist after a failed download")
	}
}

func TestDownloadRemovesPartialFileOnStreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Announce more bytes than are sent, then cut the connection
		w.Header().Set("Content-Length", "50000")
		w.Write([]byte(strings.Repeat("x", 10000)))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		conn, _, _ := w.(http.Hijacker).Hijack()
		conn.Close()
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "rom.zip")
	err := NewClientWithBaseURL(server.URL).Download(context.Background(), server.URL+"/file", dest, nil)
	if err == nil {
		t.Fatal("Expected error for truncated stream")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("Partial file should be removed after a failed download")
	}
}
