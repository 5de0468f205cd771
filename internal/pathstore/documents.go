package pathstore

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Published documents live under documentsRoot:
//
//	documents/<docID>/html            rendered HTML
//	documents/<docID>/meta            DocumentMeta
//	documents/by_hash/<hash>/<docID>  content hash index
const (
	documentsRoot = "documents"
	hashIndex     = "by_hash"
)

var docIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidDocID reports whether id can be used as a document key segment.
func ValidDocID(id string) bool {
	return docIDRe.MatchString(id) && id != hashIndex
}

// DocumentMeta describes a published document.
type DocumentMeta struct {
	DocID       string    `json:"doc_id"`
	Title       string    `json:"title,omitempty"`
	Filename    string    `json:"filename,omitempty"`
	ContentHash string    `json:"content_hash"`
	Level       int       `json:"level"`
	HTMLBytes   int       `json:"html_bytes"`
	PublishedAt time.Time `json:"published_at"`
}

func documentKey(docID string) string { return documentsRoot + "/" + docID }

func hashKey(hash, docID string) string {
	return documentsRoot + "/" + hashIndex + "/" + hash + "/" + docID
}

// PublishDocument stores the rendered HTML, its metadata and the hash index
// entry.
func (c *Client) PublishDocument(ctx context.Context, meta DocumentMeta, html string) error {
	base := documentKey(meta.DocID)
	if err := c.PutNode(ctx, base+"/html", NodeRequest{Value: html, Source: "stxdoc"}); err != nil {
		return err
	}
	if err := c.PutNode(ctx, base+"/meta", NodeRequest{Value: meta, Source: "stxdoc"}); err != nil {
		return err
	}
	if meta.ContentHash != "" {
		return c.PutNode(ctx, hashKey(meta.ContentHash, meta.DocID), NodeRequest{Value: meta.DocID, Source: "stxdoc"})
	}
	return nil
}

// FindByHash returns the id of a document already published with the given
// content hash, or "" if there is none.
func (c *Client) FindByHash(ctx context.Context, hash string) (string, error) {
	nodes, err := c.ListChildren(ctx, documentsRoot+"/"+hashIndex+"/"+hash, 1)
	if err != nil {
		return "", err
	}
	if len(nodes) == 0 {
		return "", nil
	}
	key := nodes[0].Key
	return key[strings.LastIndexByte(key, '/')+1:], nil
}

// DocumentHTML fetches the rendered HTML of a document. ok is false when the
// document does not exist.
func (c *Client) DocumentHTML(ctx context.Context, docID string) (html string, ok bool, err error) {
	node, err := c.GetNode(ctx, documentKey(docID)+"/html")
	if err != nil || node == nil {
		return "", false, err
	}
	if err := json.Unmarshal(node.Value, &html); err != nil {
		return "", false, fmt.Errorf("decode html: %w", err)
	}
	return html, true, nil
}

// DocumentMetadata fetches a document's metadata, or nil if it does not
// exist.
func (c *Client) DocumentMetadata(ctx context.Context, docID string) (*DocumentMeta, error) {
	node, err := c.GetNode(ctx, documentKey(docID)+"/meta")
	if err != nil || node == nil {
		return nil, err
	}
	var meta DocumentMeta
	if err := json.Unmarshal(node.Value, &meta); err != nil {
		return nil, fmt.Errorf("decode meta: %w", err)
	}
	return &meta, nil
}

// ListDocuments returns the metadata of every published document.
func (c *Client) ListDocuments(ctx context.Context) ([]DocumentMeta, error) {
	nodes, err := c.ListChildren(ctx, documentsRoot, 0)
	if err != nil {
		return nil, err
	}
	docs := []DocumentMeta{}
	for _, n := range nodes {
		if !strings.HasSuffix(n.Key, "/meta") || strings.HasPrefix(n.Key, documentsRoot+"/"+hashIndex+"/") {
			continue
		}
		var meta DocumentMeta
		if err := json.Unmarshal(n.Value, &meta); err != nil {
			return nil, fmt.Errorf("decode meta %s: %w", n.Key, err)
		}
		docs = append(docs, meta)
	}
	return docs, nil
}

// DeleteDocument removes a document and its hash index entry. found is false
// when there was nothing to delete.
func (c *Client) DeleteDocument(ctx context.Context, docID string) (found bool, err error) {
	meta, err := c.DocumentMetadata(ctx, docID)
	if err != nil {
		return false, err
	}
	if meta == nil {
		return false, nil
	}
	if err := c.DeleteNode(ctx, documentKey(docID), true); err != nil {
		return true, err
	}
	if meta.ContentHash != "" {
		if err := c.DeleteNode(ctx, hashKey(meta.ContentHash, docID), false); err != nil {
			return true, err
		}
	}
	return true, nil
}
