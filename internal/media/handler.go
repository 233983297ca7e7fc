package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mediapub/service/internal/config"
	"github.com/mediapub/service/internal/imgproc"
	"github.com/mediapub/service/internal/middleware"
	"github.com/mediapub/service/internal/response"
	"github.com/mediapub/service/internal/storage"
)

// maxPhotoBytes caps how much of a stored photo is buffered for resizing.
// Exceeding the cap is a hard failure, not a silent truncation.
const maxPhotoBytes = 20 << 20

// Handler holds the HTTP handlers for media upload and delivery.
type Handler struct {
	store storage.Storage
	pool  *imgproc.Pool
	cfg   *config.Config
}

// NewHandler creates a media Handler.
func NewHandler(store storage.Storage, pool *imgproc.Pool, cfg *config.Config) *Handler {
	return &Handler{store: store, pool: pool, cfg: cfg}
}

// Upload godoc
//
//	@Summary		Upload a media file
//	@Description	Accepts a multipart upload, stores it under a generated identifier, and returns its public URL in the Location header. Only the first multipart field is processed.
//	@Tags			media
//	@Accept			multipart/form-data
//	@Security		BearerAuth
//	@Success		201
//	@Header			201	{string}	Location	"Public URL of the stored file"
//	@Failure		400	{object}	response.Error
//	@Failure		401	{object}	response.Error
//	@Failure		403	{object}	response.Error
//	@Failure		500	{object}	response.Error
//	@Router			/media [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	mr, err := r.MultipartReader()
	if err != nil {
		response.InvalidRequest(w, "expected a multipart/form-data body")
		return
	}

	// Only the first field is processed; any further fields are ignored.
	part, err := mr.NextPart()
	if err != nil {
		response.InvalidRequest(w, "missing upload part")
		return
	}
	defer part.Close()

	contentType := part.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filename := part.FileName()

	category, sep, suffix := Classify(contentType, filename)
	key := ObjectKey(category, NewID(), sep, suffix)
	tail := strings.TrimPrefix(key, category+"/")

	metadata := map[string]string{}
	if claims.ClientID != "" {
		metadata["client-id"] = claims.ClientID
	}
	if claims.Me != "" {
		metadata["author"] = claims.Me
	}
	if filename != "" {
		metadata["filename"] = filename
	}

	body, err := io.ReadAll(part)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WriteErrorDescription(w, http.StatusRequestEntityTooLarge, "invalid_request",
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		log.Error().Err(err).Msg("buffering upload body failed")
		response.ServerError(w)
		return
	}

	if err := h.store.Put(r.Context(), key, bytes.NewReader(body), int64(len(body)), contentType, metadata); err != nil {
		log.Error().Err(err).Str("key", key).Msg("storage write failed")
		response.ServerError(w)
		return
	}

	w.Header().Set("Location", h.publicURL(category, tail))
	w.WriteHeader(http.StatusCreated)
}

// publicURL builds the browser-accessible URL for a stored object. Photo
// URLs point at the dimensioned route so the first access is automatically
// resized; other categories are served directly.
func (h *Handler) publicURL(category, tail string) string {
	if category == CategoryPhoto {
		return fmt.Sprintf("%s/media/photo/%dx%d/%s",
			h.cfg.MediaURL, h.cfg.DefaultWidth, h.cfg.DefaultHeight, tail)
	}
	return fmt.Sprintf("%s/media/%s/%s", h.cfg.MediaURL, category, tail)
}

// ServeFile godoc
//
//	@Summary		Serve a stored file
//	@Description	Streams the stored object verbatim with its cache and content headers. HEAD returns headers only.
//	@Tags			media
//	@Param			category	path	string	true	"Storage category (photo, audio, video, file)"
//	@Param			path		path	string	true	"Object path within the category"
//	@Success		200
//	@Failure		404
//	@Router			/media/{category}/{path} [get]
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	rest := chi.URLParam(r, "*")
	if category == "" || rest == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	key := category + "/" + rest

	if r.Method == http.MethodHead {
		info, err := h.store.Stat(r.Context(), key)
		if err != nil {
			h.deliveryError(w, key, err)
			return
		}
		writeObjectHeaders(w, info)
		w.WriteHeader(http.StatusOK)
		return
	}

	obj, err := h.store.Get(r.Context(), key)
	if err != nil {
		h.deliveryError(w, key, err)
		return
	}
	defer obj.Body.Close()

	writeObjectHeaders(w, &obj.Info)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		// Headers are gone; nothing to do beyond noting the broken stream.
		log.Debug().Err(err).Str("key", key).Msg("object stream interrupted")
	}
}

// ServePhoto godoc
//
//	@Summary		Serve a resized photo
//	@Description	Fetches the stored photo, downscales it to fit the requested box while preserving aspect ratio (never upscaling), and serves it in its original format.
//	@Tags			media
//	@Param			size		path	string	true	"Target box as {width}x{height}"
//	@Param			filename	path	string	true	"Photo filename"
//	@Success		200
//	@Failure		400
//	@Failure		404
//	@Failure		500
//	@Router			/media/photo/{size}/{filename} [get]
func (h *Handler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	width, height, ok := parseSize(chi.URLParam(r, "size"))
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	key := CategoryPhoto + "/" + chi.URLParam(r, "filename")

	obj, err := h.store.Get(r.Context(), key)
	if err != nil {
		h.deliveryError(w, key, err)
		return
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(io.LimitReader(obj.Body, maxPhotoBytes+1))
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("reading photo failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if len(data) > maxPhotoBytes {
		log.Error().Str("key", key).Msg("photo exceeds resize size cap")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	mimeType, out, err := h.pool.Scale(r.Context(), data, width, height)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("image transform failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeObjectHeaders(w, &obj.Info)
	if mimeType != "" {
		w.Header().Set("Content-Type", mimeType)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (h *Handler) deliveryError(w http.ResponseWriter, key string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	log.Error().Err(err).Str("key", key).Msg("storage read failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// parseSize splits "{width}x{height}" into its two non-negative dimensions.
func parseSize(size string) (uint, uint, bool) {
	wStr, hStr, found := strings.Cut(size, "x")
	if !found {
		return 0, 0, false
	}
	width, err := strconv.ParseUint(wStr, 10, 32)
	if err != nil {
		return 0, 0, false
	}
	height, err := strconv.ParseUint(hStr, 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return uint(width), uint(height), true
}
