package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cortexhq/embedding-service/internal/api/respond"
	"github.com/cortexhq/embedding-service/internal/model"
)

// maxBatchSize caps a single batch request. Fixed design constant, not
// configurable.
const maxBatchSize = 100

const notLoadedMsg = "Embedding model not loaded"

// EmbedRequest is the body of POST /embed.
type EmbedRequest struct {
	Text string `json:"text"`
}

// EmbedResponse carries one vector; Dimension always equals len(Embedding).
type EmbedResponse struct {
	Embedding []float32 `json:"embedding"`
	Dimension int       `json:"dimension"`
}

// EmbedBatchRequest is the body of POST /embed/batch.
type EmbedBatchRequest struct {
	Texts []string `json:"texts"`
}

// EmbedBatchResponse carries one vector per input text, in input order.
type EmbedBatchResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Dimension  int         `json:"dimension"`
	Count      int         `json:"count"`
}

// EmbedHandler handles POST /embed and POST /embed/batch.
type EmbedHandler struct {
	handle *model.Handle
}

// NewEmbedHandler instantiates the handler with its model handle.
func NewEmbedHandler(handle *model.Handle) *EmbedHandler {
	return &EmbedHandler{handle: handle}
}

// HandleEmbed generates an embedding for a single text.
func (h *EmbedHandler) HandleEmbed(w http.ResponseWriter, r *http.Request) {
	var req EmbedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid request body")
		return
	}

	vec, err := h.handle.EmbedOne(r.Context(), req.Text)
	if err != nil {
		writeEmbedError(w, r, err, "Embedding generation failed")
		return
	}
	if vec == nil {
		vec = []float32{}
	}

	respond.WriteJSON(w, http.StatusOK, EmbedResponse{
		Embedding: vec,
		Dimension: len(vec),
	})
}

// HandleEmbedBatch generates embeddings for up to maxBatchSize texts.
func (h *EmbedHandler) HandleEmbedBatch(w http.ResponseWriter, r *http.Request) {
	var req EmbedBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid request body")
		return
	}

	if !h.handle.Loaded() {
		respond.WriteServiceUnavailable(w, notLoadedMsg)
		return
	}
	if len(req.Texts) > maxBatchSize {
		respond.WriteBadRequest(w, fmt.Sprintf("Batch size too large (max %d)", maxBatchSize))
		return
	}

	vecs, err := h.handle.EmbedMany(r.Context(), req.Texts)
	if err != nil {
		writeEmbedError(w, r, err, "Batch embedding generation failed")
		return
	}
	if vecs == nil {
		vecs = [][]float32{}
	}

	dimension := 0
	if len(vecs) > 0 {
		dimension = len(vecs[0])
	}

	respond.WriteJSON(w, http.StatusOK, EmbedBatchResponse{
		Embeddings: vecs,
		Dimension:  dimension,
		Count:      len(vecs),
	})
}

// writeEmbedError maps handle failures to protocol errors: not-ready to 503,
// backend failures to 500 with the wrapped message. Backend detail is logged
// in full here and nowhere else.
func writeEmbedError(w http.ResponseWriter, r *http.Request, err error, prefix string) {
	if errors.Is(err, model.ErrNotReady) || errors.Is(err, model.ErrStopped) {
		respond.WriteServiceUnavailable(w, notLoadedMsg)
		return
	}
	zerolog.Ctx(r.Context()).Error().Stack().Err(err).Msg("embedding backend call failed")
	respond.WriteInternalError(w, fmt.Sprintf("%s: %v", prefix, err))
}
