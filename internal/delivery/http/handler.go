package http //nolint:revive // directory-based package name, imported with alias

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-http-utils/headers"
	"github.com/google/uuid"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/bill"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/qrcode"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/repository"
	"github.com/Xausdorf/swiss-qr-bill/internal/usecase/generateqr"
	"github.com/Xausdorf/swiss-qr-bill/internal/usecase/sharelink"
)

const (
	maxPNGSize           = 4096
	idempotencyKeyHeader = "X-Idempotency-Key"
)

type Handler struct {
	generateQRUC  *generateqr.UseCase
	shareLinkUC   *sharelink.UseCase
	publicBaseURL string
	pngSize       int
}

func NewHandler(generateQRUC *generateqr.UseCase, shareLinkUC *sharelink.UseCase, publicBaseURL string, pngSize int) *Handler {
	return &Handler{
		generateQRUC:  generateQRUC,
		shareLinkUC:   shareLinkUC,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		pngSize:       pngSize,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type MetaResponse struct {
	Title         string `json:"title"`
	Amount        string `json:"amount,omitempty"`
	PayloadLength int    `json:"payloadLength"`
	Version       int    `json:"version"`
	Level         string `json:"level"`
	Mode          string `json:"mode"`
	Mask          int    `json:"mask"`
}

type ShareResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	URL      string `json:"url"`
	QRURL    string `json:"qrUrl"`
	Replayed bool   `json:"replayed"`
}

// HandleImage serves /api/qr/{data}.svg and /api/qr/{data}.png.
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "data")

	req := generateqr.Request{}
	var contentType, token string
	if t, ok := strings.CutSuffix(param, ".svg"); ok {
		token, req.Format, contentType = t, generateqr.FormatSVG, "image/svg+xml"
	} else if t, ok := strings.CutSuffix(param, ".png"); ok {
		token, req.Format, contentType = t, generateqr.FormatPNG, "image/png"
		size, err := h.size(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		req.Size = size
	} else {
		http.NotFound(w, r)
		return
	}

	data, err := h.generateQRUC.Decode(token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req.Data = data

	img, err := h.generateQRUC.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set(headers.ContentType, contentType)
	w.Header().Set(headers.CacheControl, "public, max-age=3600")
	_, _ = w.Write(img)
}

func (h *Handler) HandlePayload(w http.ResponseWriter, r *http.Request) {
	data, err := h.generateQRUC.Decode(chi.URLParam(r, "data"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	payload, err := h.generateQRUC.Payload(r.Context(), data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set(headers.ContentType, "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(payload.String()))
}

func (h *Handler) HandleMeta(w http.ResponseWriter, r *http.Request) {
	data, err := h.generateQRUC.Decode(chi.URLParam(r, "data"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	meta, err := h.generateQRUC.Meta(r.Context(), data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MetaResponse{
		Title:         meta.Title,
		Amount:        meta.Amount,
		PayloadLength: meta.PayloadLength,
		Version:       meta.Version,
		Level:         meta.Level.String(),
		Mode:          meta.Mode.String(),
		Mask:          meta.Mask,
	})
}

func (h *Handler) HandleShare(w http.ResponseWriter, r *http.Request) {
	idempotencyKey := r.Header.Get(idempotencyKeyHeader)
	if idempotencyKey == "" {
		http.Error(w, `{"error":"X-Idempotency-Key header required"}`, http.StatusBadRequest)
		return
	}

	var data bill.PaymentData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	resp, err := h.shareLinkUC.Execute(r.Context(), sharelink.Request{
		IdempotencyKey: idempotencyKey,
		Data:           data,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if resp.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, ShareResponse{
		ID:       resp.ID.String(),
		Token:    resp.Token,
		URL:      h.publicBaseURL + "/b/" + resp.ID.String(),
		QRURL:    h.qrURL(resp.Token),
		Replayed: resp.Replayed,
	})
}

func (h *Handler) HandleShortLink(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	token, err := h.shareLinkUC.Resolve(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	http.Redirect(w, r, h.qrURL(token), http.StatusFound)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(headers.ContentType, "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) qrURL(token string) string {
	return h.publicBaseURL + "/qr/" + token
}

func (h *Handler) size(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("size")
	if raw == "" {
		return h.pngSize, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 || size > maxPNGSize {
		return 0, errors.New("size must be between 1 and " + strconv.Itoa(maxPNGSize))
	}
	return size, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *bill.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, qrcode.ErrPayloadTooLarge):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "input too long to encode"})
	case errors.Is(err, generateqr.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, sharelink.ErrIdempotencyConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(headers.ContentType, "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
