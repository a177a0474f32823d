package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/youruser/mockupkit/internal/config"
	"github.com/youruser/mockupkit/internal/export"
	imagepkg "github.com/youruser/mockupkit/internal/image"
	"github.com/youruser/mockupkit/internal/templates"
	"github.com/youruser/mockupkit/internal/upload"
)

const (
	defaultThumbnailSize = 320
	maxThumbnailSize     = 1024

	// multipartOverhead is the request body allowance beyond the image limit.
	multipartOverhead = 1 << 20
)

// Server serves the template gallery and the compose endpoint.
type Server struct {
	registry   *templates.Registry
	compositor *imagepkg.Compositor
	cfg        config.Config
	log        *logrus.Entry
	now        func() time.Time
}

func NewServer(reg *templates.Registry, comp *imagepkg.Compositor, cfg config.Config, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{
		registry:   reg,
		compositor: comp,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
	}
}

// health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"templates":      s.registry.Len(),
		"cached_artwork": s.compositor.CachedArtwork(),
	})
}

// listTemplates filters the gallery by ?category= and free-text ?q=.
func (s *Server) listTemplates(c *gin.Context) {
	var opt templates.FilterOptions
	if cat := c.Query("category"); cat != "" {
		category, err := templates.ParseCategory(cat)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opt.Categories = []templates.Category{category}
	}
	opt.FreeWords = c.Query("q")

	out := s.registry.Filter(opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "templates": out})
}

func (s *Server) getTemplate(c *gin.Context) {
	tpl, err := s.registry.Lookup(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// templateThumbnail renders the artwork scaled to fit ?size= pixels.
func (s *Server) templateThumbnail(c *gin.Context) {
	tpl, err := s.registry.Lookup(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	size := defaultThumbnailSize
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxThumbnailSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and 1024"})
			return
		}
		size = n
	}

	art, err := s.compositor.LoadArtwork(c.Request.Context(), tpl)
	if err != nil {
		s.writeError(c, err)
		return
	}
	thumb := imaging.Fit(art, size, size, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		s.writeError(c, &imagepkg.RenderingUnavailableError{Err: err})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// compose accepts a multipart form with "template", optional "fit" and an
// "image" file, and answers with the composed PNG. With ?format=dataurl the
// PNG is returned inline in JSON instead.
func (s *Server) compose(c *gin.Context) {
	log := s.log.WithField("request_id", c.GetString(requestIDKey))

	// Bound the whole body before the multipart parser spools it to memory
	// or disk.
	limit := s.cfg.Upload.MaxBytes
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	if _, err := c.MultipartForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(c, &imagepkg.OversizeInputError{Size: tooLarge.Limit, Limit: limit})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected a multipart form: " + err.Error()})
		return
	}

	tpl, err := s.registry.Lookup(c.PostForm("template"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	fit := s.cfg.FitMode()
	if v := c.PostForm("fit"); v != "" {
		fit, err = imagepkg.ParseFitMode(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if err := upload.CheckSize(fh.Size, limit); err != nil {
		s.writeError(c, err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	src, err := upload.Acquire(fh.Filename, f, limit)
	if err != nil {
		s.writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	if s.cfg.Server.ComposeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Server.ComposeTimeout)
		defer cancel()
	}
	res, err := s.compositor.Compose(ctx, imagepkg.Request{Template: tpl, User: src, Fit: fit})
	if err != nil {
		s.writeError(c, err)
		return
	}

	name := export.Filename(tpl.ID, s.now())
	log.WithFields(logrus.Fields{
		"template": tpl.ID,
		"fit":      fit,
		"bytes":    len(res.PNG),
	}).Info("mockup composed")

	if c.Query("format") == "dataurl" {
		c.JSON(http.StatusOK, gin.H{
			"filename": name,
			"width":    res.Width,
			"height":   res.Height,
			"geometry": res.Geometry,
			"data_url": export.DataURL(res),
		})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "image/png", res.PNG)
}

// writeError maps the error taxonomy onto HTTP statuses.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, templates.ErrTemplateNotFound):
		status = http.StatusNotFound
	case errors.Is(err, imagepkg.ErrUnsupportedFormat):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, imagepkg.ErrOversizeInput):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, imagepkg.ErrImageLoad):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, imagepkg.ErrRenderingUnavailable):
		status = http.StatusInternalServerError
	}

	entry := s.log.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"status":     status,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
