package catalog

import "strconv"

// SearchResult represents one item returned by the archive search API
type SearchResult struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Downloads  int64  `json:"downloads"`
	ItemSize   int64  `json:"item_size"`
	PublicDate string `json:"publicdate"`
}

// FileEntry represents one file inside an archive item. The metadata API
// reports sizes as JSON strings, so Size stays a string on the wire.
type FileEntry struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// SizeBytes returns the file size in bytes, 0 when unknown
func (f FileEntry) SizeBytes() int64 {
	n, err := strconv.ParseInt(f.Size, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// searchResponse is the envelope of the advancedsearch API
type searchResponse struct {
	Response struct {
		Docs []SearchResult `json:"docs"`
	} `json:"response"`
}

// metadataResponse is the envelope of the metadata API
type metadataResponse struct {
	Files []FileEntry `json:"files"`
}
