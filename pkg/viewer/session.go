// Package viewer manages the lifecycle of an in-app document preview:
// download, local cache entry, render-mode classification, teardown.
package viewer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Innovation-Code-SN/companysphere-go/pkg/cache"
	"github.com/Innovation-Code-SN/companysphere-go/pkg/models"
)

// Downloader fetches a document's binary payload.
type Downloader interface {
	DownloadDocument(ctx context.Context, id int64) (io.ReadCloser, int64, error)
}

// RenderMode says how a cached document should be presented.
type RenderMode string

const (
	ModePDF      RenderMode = "pdf"
	ModeImage    RenderMode = "image"
	ModeText     RenderMode = "text"
	ModeMedia    RenderMode = "media"
	ModeExternal RenderMode = "external" // no in-app renderer, open externally
)

// ClassifyContentType maps a content-type onto a render mode using
// ordered substring checks.
func ClassifyContentType(contentType string) RenderMode {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return ModePDF
	case strings.Contains(ct, "image"):
		return ModeImage
	case strings.Contains(ct, "text"):
		return ModeText
	case strings.Contains(ct, "video"), strings.Contains(ct, "audio"):
		return ModeMedia
	default:
		return ModeExternal
	}
}

// State is the viewer session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateReady
	StateError
	StateClosed
)

// Session is one open document preview. Each session owns its own
// cache entry; two sessions on the same document never share one.
type Session struct {
	id  string
	gw  Downloader
	c   *cache.Cache
	doc models.Document

	mu        sync.Mutex
	gen       int
	state     State
	mode      RenderMode
	localPath string
	lastErr   error
}

// NewSession creates a session for doc. Nothing is fetched until Open.
func NewSession(gw Downloader, c *cache.Cache, doc models.Document) *Session {
	return &Session{
		id:  uuid.NewString(),
		gw:  gw,
		c:   c,
		doc: doc,
	}
}

// entryName scopes the cache name with a session-specific prefix so
// concurrently open viewers of the same document never collide.
func (s *Session) entryName() string {
	return s.id[:8] + "_" + s.doc.Name
}

// Open fetches the document, writes it to the cache and classifies its
// render mode. On failure the session moves to StateError and keeps
// the error; Retry restarts the fetch. A completion whose attempt has
// been superseded or whose session has been closed is discarded.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return fmt.Errorf("session closed")
	}
	s.gen++
	myGen := s.gen
	s.mu.Unlock()

	rc, _, err := s.gw.DownloadDocument(ctx, s.doc.ID)
	if err != nil {
		s.fail(myGen, err)
		return err
	}

	path, err := s.c.Write(s.entryName(), rc)
	rc.Close()
	if err != nil {
		s.fail(myGen, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if myGen != s.gen || s.state == StateClosed {
		// Superseded or closed while downloading; drop the orphan entry.
		s.c.Delete(path)
		return nil
	}

	if s.localPath != "" && s.localPath != path {
		s.c.Delete(s.localPath)
	}
	s.state = StateReady
	s.localPath = path
	s.mode = ClassifyContentType(s.doc.ContentType)
	s.lastErr = nil
	return nil
}

// Retry restarts the download after a failure.
func (s *Session) Retry(ctx context.Context) error {
	return s.Open(ctx)
}

func (s *Session) fail(gen int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.state == StateClosed {
		return
	}
	s.state = StateError
	s.lastErr = err
}

// Close tears the session down, deleting its cache entry. The delete
// is best-effort: errors are swallowed, the entry is scratch space.
// Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return
	}
	s.gen++
	s.state = StateClosed
	if s.localPath != "" {
		s.c.Delete(s.localPath)
		s.localPath = ""
	}
}

// ID returns the session identity.
func (s *Session) ID() string { return s.id }

// Document returns the document this session previews.
func (s *Session) Document() models.Document { return s.doc }

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mode returns the render mode chosen at open time.
func (s *Session) Mode() RenderMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// LocalPath returns the cache entry backing the preview, empty until
// the session is ready.
func (s *Session) LocalPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localPath
}

// Err returns the error that put the session in StateError.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
