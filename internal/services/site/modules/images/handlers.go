package images

import (
	"bytes"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/northlinerail/website/internal/platform/assets/imagecdn"
	"github.com/northlinerail/website/internal/services/site/platform/httpx"
	"github.com/northlinerail/website/internal/services/site/routepath"
	"go.uber.org/zap"
)

// svgPolicy keeps scripts embedded in SVG sources inert.
const svgPolicy = "default-src 'none'; style-src 'unsafe-inline'; sandbox;"

type handlers struct {
	config imagecdn.Config
	static fs.FS
	logger *zap.Logger
}

// VariantPath names the pre-built encoding of src at width and quality.
// images/hero.svg at 640w, q75, WebP is images/hero-w640-q75.webp.
func VariantPath(src string, width, quality int, format string) string {
	ext := path.Ext(src)
	return strings.TrimSuffix(src, ext) + "-w" + strconv.Itoa(width) + "-q" + strconv.Itoa(quality) + imagecdn.FormatExtension(format)
}

func (h handlers) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := h.config.ParseRequest(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	source := strings.TrimPrefix(req.Src, routepath.StaticPrefix)
	if !fs.ValidPath(source) {
		http.Error(w, imagecdn.ErrSourceNotLocal.Error(), http.StatusBadRequest)
		return
	}
	if _, err := fs.Stat(h.static, source); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.log().Error("stat image source", zap.String("src", req.Src), zap.Error(err))
		}
		http.NotFound(w, r)
		return
	}

	name := source
	contentType := mime.TypeByExtension(path.Ext(source))
	format := h.config.NegotiateFormat(r.Header.Get("Accept"), func(format string) bool {
		_, err := fs.Stat(h.static, VariantPath(source, req.Width, req.Quality, format))
		return err == nil
	})
	if format != "" {
		name = VariantPath(source, req.Width, req.Quality, format)
		contentType = format
	}

	data, err := fs.ReadFile(h.static, name)
	if err != nil {
		h.log().Error("read image", zap.String("name", name), zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	header := w.Header()
	header.Set("Vary", "Accept")
	header.Set("Cache-Control", cacheControl(h.config.MinimumCacheTTL))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	if contentType == "image/svg+xml" {
		header.Set("Content-Security-Policy", svgPolicy)
	}
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
}

func cacheControl(ttl time.Duration) string {
	if ttl <= 0 {
		return "public, max-age=0, must-revalidate"
	}
	return "public, max-age=" + strconv.Itoa(int(ttl/time.Second)) + ", immutable"
}

func (h handlers) log() *zap.Logger {
	if h.logger == nil {
		return zap.NewNop()
	}
	return h.logger
}
