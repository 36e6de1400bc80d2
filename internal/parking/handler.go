package parking

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/campus-parking/internal/transport"
)

type ServiceAPI interface {
	CreateLot(dto CreateLotDTO) (*Lot, error)
	GetLot(name string) (*Lot, error)
	ListLots(limit, offset int) ([]*Lot, error)
	UpdateLot(name string, dto UpdateLotDTO) (*Lot, error)
	DeleteLot(name string) error

	CreateZone(dto CreateZoneDTO) (*Zone, error)
	ListZones() ([]*Zone, error)
	ReassignZone(zoneID, lotName string, dto ReassignZoneDTO) (*Zone, error)
	DeleteZone(zoneID, lotName string) error

	CreateSpace(dto CreateSpaceDTO) (*Space, error)
	ListSpaces(zoneID, lotName string) ([]*Space, error)
	SetSpaceAvailability(number int, zoneID, lotName string, dto SetSpaceAvailabilityDTO) (*Space, error)
	DeleteSpace(number int, zoneID, lotName string) error
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

func (h *Handler) CreateLot(w http.ResponseWriter, r *http.Request) {
	var dto CreateLotDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.CreateLot(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) GetLot(w http.ResponseWriter, r *http.Request) {
	l, err := h.Service.GetLot(chi.URLParam(r, "name"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) ListLots(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	lots, err := h.Service.ListLots(limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"lots": lots})
}

func (h *Handler) UpdateLot(w http.ResponseWriter, r *http.Request) {
	var dto UpdateLotDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.UpdateLot(chi.URLParam(r, "name"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) DeleteLot(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteLot(chi.URLParam(r, "name")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateZone(w http.ResponseWriter, r *http.Request) {
	var dto CreateZoneDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	z, err := h.Service.CreateZone(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, z)
}

func (h *Handler) ListZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.Service.ListZones()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"zones": zones})
}

func (h *Handler) ReassignZone(w http.ResponseWriter, r *http.Request) {
	var dto ReassignZoneDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	z, err := h.Service.ReassignZone(chi.URLParam(r, "zoneID"), r.URL.Query().Get("lot"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, z)
}

func (h *Handler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteZone(chi.URLParam(r, "zoneID"), r.URL.Query().Get("lot")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateSpace(w http.ResponseWriter, r *http.Request) {
	var dto CreateSpaceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sp, err := h.Service.CreateSpace(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sp)
}

func (h *Handler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.Service.ListSpaces(r.URL.Query().Get("zone"), r.URL.Query().Get("lot"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"spaces": spaces})
}

func (h *Handler) SetSpaceAvailability(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid space number")
		return
	}

	var dto SetSpaceAvailabilityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sp, err := h.Service.SetSpaceAvailability(number, r.URL.Query().Get("zone"), r.URL.Query().Get("lot"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sp)
}

func (h *Handler) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid space number")
		return
	}

	if err := h.Service.DeleteSpace(number, r.URL.Query().Get("zone"), r.URL.Query().Get("lot")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
