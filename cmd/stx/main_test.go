package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderStdin(t *testing.T) {
	out, err := run(t, "Hello *world*", "render")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello <em>world</em></p>\n\n", out)
}

func TestRenderLevel(t *testing.T) {
	out, err := run(t, "Title\n\n  Body", "render", "-l", "3")
	require.NoError(t, err)
	assert.Equal(t, "<h3>Title</h3>\n<p>Body</p>\n\n\n", out)

	_, err = run(t, "x", "render", "--level=-1")
	assert.Error(t, err)
}

func TestRenderWeb(t *testing.T) {
	out, err := run(t, "#!/usr/bin/env stx\n\nTitle\n\n  Body", "render", "-w")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Content-Type: text/html\n\n<html><head><title>Title</title>"), out)
	assert.True(t, strings.HasSuffix(out, "</body></html>\n"), out)
}

func TestRenderOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.stx")
	dst := filepath.Join(dir, "doc.html")
	require.NoError(t, os.WriteFile(in, []byte("- a\n\n- b\n"), 0o644))

	out, err := run(t, "", "render", "-o", dst, in)
	require.NoError(t, err)
	assert.Empty(t, out)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<ul><li><p>a</p>\n\n\n<li><p>b</p>\n\n</ul>\n", string(got))
}

func TestRenderRejectsBinary(t *testing.T) {
	_, err := run(t, "\xff\xfe", "render")
	assert.ErrorContains(t, err, "utf-8")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "guide.md")
	require.NoError(t, os.WriteFile(md, []byte("# Guide\n\n1. first\n2. second\n"), 0o644))

	out, err := run(t, "", "convert", md)
	require.NoError(t, err)
	assert.Equal(t, "Guide\n\n  1. first\n\n  2. second\n", out)

	out, err = run(t, "", "convert", "--html", md)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Guide</h1>\n<ol><li><p>first</p>\n\n\n<li><p>second</p>\n\n</ol>\n\n", out)

	_, err = run(t, "", "convert", filepath.Join(dir, "x.png"))
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestTree(t *testing.T) {
	out, err := run(t, "Title\n\n  - item\n\n  more", "tree", "-v")
	require.NoError(t, err)
	assert.Equal(t, "@0 Heading \"Title\"\n  @2 Bullet \"- item\"\n  @2 Paragraph \"more\"\n", out)
}
