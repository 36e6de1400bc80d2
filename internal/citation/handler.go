package citation

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/campus-parking/internal/transport"
)

type ServiceAPI interface {
	CreateCitation(dto CreateCitationDTO) (*CreateResult, error)
	GetCitation(id int64) (*Citation, error)
	ListCitations(limit, offset int) ([]*Citation, error)
	GetVehicleCitations(license string) ([]*Citation, error)
	PayCitation(id int64) (*Citation, error)
	AppealCitation(id int64) (*Citation, error)
	DeleteCitation(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) CreateCitation(w http.ResponseWriter, r *http.Request) {
	var dto CreateCitationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateCitation: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.CreateCitation(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) GetCitation(w http.ResponseWriter, r *http.Request) {
	id, err := citationID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "citation id must be numeric")
		return
	}

	c, err := h.Service.GetCitation(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) ListCitations(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	citations, err := h.Service.ListCitations(limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"citations": citations})
}

// GetVehicleCitations lists the citations recorded against one plate.
func (h *Handler) GetVehicleCitations(w http.ResponseWriter, r *http.Request) {
	citations, err := h.Service.GetVehicleCitations(chi.URLParam(r, "license"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"citations": citations})
}

func (h *Handler) PayCitation(w http.ResponseWriter, r *http.Request) {
	id, err := citationID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "citation id must be numeric")
		return
	}

	c, err := h.Service.PayCitation(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) AppealCitation(w http.ResponseWriter, r *http.Request) {
	id, err := citationID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "citation id must be numeric")
		return
	}

	c, err := h.Service.AppealCitation(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCitation(w http.ResponseWriter, r *http.Request) {
	id, err := citationID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "citation id must be numeric")
		return
	}

	if err := h.Service.DeleteCitation(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func citationID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
