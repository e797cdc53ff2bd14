package adminapi

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"time"
)

func (c *Client) KnowledgeBase(ctx context.Context) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := c.get(ctx, "/knowledge-base", nil, &kb); err != nil {
		return nil, err
	}
	return &kb, nil
}

func (c *Client) DeleteKnowledgeBaseContent(ctx context.Context, collection, filename string) (*ActionResult, error) {
	return c.action(ctx, http.MethodDelete, "/knowledge-base/"+url.PathEscape(collection)+"/"+url.PathEscape(filename))
}

func (c *Client) RegenerateEmbeddings(ctx context.Context) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/knowledge-base/regenerate-embeddings")
}

// UploadKnowledgeBaseContent streams src as a multipart upload into collection.
// progress, if set, is called with the bytes sent so far and size.
func (c *Client) UploadKnowledgeBaseContent(ctx context.Context, collection, filename string, src io.Reader, size int64, progress func(sent, total int64)) (*ActionResult, error) {
	if c.creds == nil || c.creds.Token() == "" {
		return nil, ErrMissingToken
	}

	// Pipe lets us stream the multipart body without buffering it in memory.
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		if err := writer.WriteField("collection", collection); err != nil {
			pw.CloseWithError(err)
			return
		}
		part, err := writer.CreateFormFile("file", filepath.Base(filename))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		pwProgress := &progressWriter{
			w:      part,
			total:  size,
			every:  250 * time.Millisecond,
			report: progress,
		}
		if _, err := io.Copy(pwProgress, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := writer.Close(); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.Close()
	}()

	body, err := c.do(ctx, http.MethodPost, "/knowledge-base/upload", nil, pr, writer.FormDataContentType())
	// unblock the writer goroutine if the request failed before draining the pipe
	pr.Close()
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	c.Invalidate()
	var r ActionResult
	if err := decode(body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
