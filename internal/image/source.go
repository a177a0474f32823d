package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/youruser/mockupkit/internal/templates"
	"github.com/youruser/mockupkit/internal/util"
)

// Source locates raster data. Open is called once per composition.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a local file.
type FileSource string

func (s FileSource) Name() string { return string(s) }

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(string(s))
}

// BytesSource serves an in-memory buffer, typically an uploaded file.
type BytesSource struct {
	Label string
	Data  []byte
}

func (s BytesSource) Name() string { return s.Label }

func (s BytesSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}

// URLSource fetches an http(s) URL.
type URLSource struct {
	URL    string
	Client *http.Client
	// Limit caps the body size; zero means unlimited.
	Limit int64
}

func (s URLSource) Name() string { return s.URL }

func (s URLSource) Open(ctx context.Context) (io.ReadCloser, error) {
	b, err := util.GetBytes(ctx, s.Client, s.URL, s.Limit)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// DataURLSource decodes a base64 data: URL.
type DataURLSource string

func (s DataURLSource) Name() string {
	v := string(s)
	if i := strings.IndexByte(v, ','); i >= 0 {
		return v[:i]
	}
	return v
}

func (s DataURLSource) Open(ctx context.Context) (io.ReadCloser, error) {
	_, b, err := DecodeDataURL(string(s))
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// FSSource reads a file from an fs.FS, such as the bundled template assets.
type FSSource struct {
	FS   fs.FS
	Path string
	Ref  string
}

func (s FSSource) Name() string {
	if s.Ref != "" {
		return s.Ref
	}
	return s.Path
}

func (s FSSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return s.FS.Open(s.Path)
}

// Resolver turns locator strings into Sources:
//
//	embed://name    bundled template asset
//	http(s)://...   remote fetch
//	data:...        inline base64 data URL
//	qr:text         generated QR code
//	anything else   local file path
type Resolver struct {
	Assets        fs.FS
	AssetsDir     string
	HTTPClient    *http.Client
	MaxFetchBytes int64
	QRSize        int
}

// NewResolver returns a resolver backed by the bundled template assets.
func NewResolver(client *http.Client, maxFetchBytes int64) *Resolver {
	return &Resolver{
		Assets:        templates.Assets,
		AssetsDir:     templates.AssetsDir,
		HTTPClient:    client,
		MaxFetchBytes: maxFetchBytes,
		QRSize:        DefaultQRSize,
	}
}

func (r *Resolver) Resolve(ref string) (Source, error) {
	switch {
	case ref == "":
		return nil, fmt.Errorf("empty image locator")
	case strings.HasPrefix(ref, templates.EmbedScheme):
		if r.Assets == nil {
			return nil, fmt.Errorf("%s: no bundled assets configured", ref)
		}
		name := strings.TrimPrefix(ref, templates.EmbedScheme)
		return FSSource{FS: r.Assets, Path: path.Join(r.AssetsDir, name), Ref: ref}, nil
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return URLSource{URL: ref, Client: r.HTTPClient, Limit: r.MaxFetchBytes}, nil
	case strings.HasPrefix(ref, "data:"):
		return DataURLSource(ref), nil
	case strings.HasPrefix(ref, QRScheme):
		size := r.QRSize
		if size <= 0 {
			size = DefaultQRSize
		}
		return QRSource{Text: strings.TrimPrefix(ref, QRScheme), Size: size}, nil
	}
	return FileSource(ref), nil
}
