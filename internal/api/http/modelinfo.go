package http

import (
	"net/http"

	"github.com/cortexhq/embedding-service/internal/api/respond"
	"github.com/cortexhq/embedding-service/internal/model"
)

// infoProbeText is the single-word input embedded on every /models/info call
// to report the live dimension. Diagnostic by design: the endpoint re-probes
// the backend rather than serving a cached value.
const infoProbeText = "test"

// ModelInfoHandler handles GET /models/info.
type ModelInfoHandler struct {
	handle    *model.Handle
	modelName string
}

// NewModelInfoHandler instantiates the handler.
func NewModelInfoHandler(handle *model.Handle, modelName string) *ModelInfoHandler {
	return &ModelInfoHandler{handle: handle, modelName: modelName}
}

// ModelInfoResponse describes the loaded model.
type ModelInfoResponse struct {
	ModelName          string   `json:"model_name"`
	Provider           string   `json:"provider"`
	EmbeddingDimension int      `json:"embedding_dimension"`
	MaxSequenceLength  int      `json:"max_sequence_length"`
	SuitableFor        []string `json:"suitable_for"`
}

// HandleModelInfo reports model metadata with a freshly measured dimension.
func (h *ModelInfoHandler) HandleModelInfo(w http.ResponseWriter, r *http.Request) {
	if !h.handle.Loaded() {
		respond.WriteServiceUnavailable(w, notLoadedMsg)
		return
	}

	vec, err := h.handle.EmbedOne(r.Context(), infoProbeText)
	if err != nil {
		writeEmbedError(w, r, err, "Embedding generation failed")
		return
	}

	respond.WriteJSON(w, http.StatusOK, ModelInfoResponse{
		ModelName:          h.modelName,
		Provider:           "HuggingFace",
		EmbeddingDimension: len(vec),
		MaxSequenceLength:  512,
		SuitableFor:        []string{"code", "text", "semantic_search"},
	})
}
