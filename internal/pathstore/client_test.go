package pathstore_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/stxdoc/internal/pathstore"
	"github.com/dgallion1/stxdoc/internal/pathstore/pathstoretest"
)

func TestPublishAndFind(t *testing.T) {
	srv := pathstoretest.NewServer()
	defer srv.Close()
	c := pathstore.NewClient(srv.URL+"/", "key")
	defer c.Close()
	ctx := context.Background()

	meta := pathstore.DocumentMeta{
		DocID:       "guide",
		Title:       "Guide",
		ContentHash: "abc",
		Level:       1,
		PublishedAt: time.Unix(0, 0).UTC(),
	}
	require.NoError(t, c.PublishDocument(ctx, meta, "<h1>Guide</h1>\n"))
	assert.Equal(t, []string{
		"documents/by_hash/abc/guide",
		"documents/guide/html",
		"documents/guide/meta",
	}, srv.Keys())

	id, err := c.FindByHash(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "guide", id)

	id, err = c.FindByHash(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, id)

	html, ok, err := c.DocumentHTML(ctx, "guide")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<h1>Guide</h1>\n", html)

	docs, err := c.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, meta, docs[0])
}

func TestDeleteDocument(t *testing.T) {
	srv := pathstoretest.NewServer()
	defer srv.Close()
	c := pathstore.NewClient(srv.URL, "key")
	ctx := context.Background()

	require.NoError(t, c.PublishDocument(ctx, pathstore.DocumentMeta{DocID: "a", ContentHash: "h"}, "x"))
	require.NoError(t, c.PublishDocument(ctx, pathstore.DocumentMeta{DocID: "b", ContentHash: "h2"}, "y"))

	found, err := c.DeleteDocument(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{
		"documents/b/html",
		"documents/b/meta",
		"documents/by_hash/h2/b",
	}, srv.Keys())

	found, err = c.DeleteDocument(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)

	_, ok, err := c.DocumentHTML(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRetryableStatus(t *testing.T) {
	srv := pathstoretest.NewServer()
	defer srv.Close()
	c := pathstore.NewClient(srv.URL, "key")
	ctx := context.Background()

	for _, tc := range []struct {
		status    int
		retryable bool
	}{
		{http.StatusServiceUnavailable, true},
		{http.StatusTooManyRequests, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
	} {
		srv.FailWith(tc.status)
		err := c.PutNode(ctx, "k", pathstore.NodeRequest{Value: 1})
		require.Error(t, err)
		var re *pathstore.RetryableError
		assert.Equal(t, tc.retryable, errors.As(err, &re), "status %d", tc.status)
		if tc.retryable {
			assert.Equal(t, tc.status, re.StatusCode)
		}
	}
}

func TestTransportErrorIsRetryable(t *testing.T) {
	srv := pathstoretest.NewServer()
	url := srv.URL
	srv.Close()

	c := pathstore.NewClient(url, "key")
	_, err := c.GetNode(context.Background(), "k")
	var re *pathstore.RetryableError
	require.True(t, errors.As(err, &re))
	assert.Zero(t, re.StatusCode)
}

func TestValidDocID(t *testing.T) {
	assert.True(t, pathstore.ValidDocID("guide-1.2_x"))
	assert.False(t, pathstore.ValidDocID(""))
	assert.False(t, pathstore.ValidDocID("a/b"))
	assert.False(t, pathstore.ValidDocID(".hidden"))
	assert.False(t, pathstore.ValidDocID("by_hash"))
}
