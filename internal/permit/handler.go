package permit

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/campus-parking/internal/transport"
)

type ServiceAPI interface {
	CreatePermit(dto CreatePermitDTO) (*Permit, error)
	AssignToDriver(driverID string, dto CreatePermitDTO) (*Permit, error)
	GetPermit(permitID string) ([]*Permit, error)
	ListPermits(limit, offset int) ([]*Permit, error)
	GetDriverPermits(driverID string) ([]*Permit, error)
	UpdatePermit(permitID string, dto UpdatePermitDTO) ([]*Permit, error)
	AttachVehicle(permitID string, dto AttachVehicleDTO) ([]*Permit, error)
	DetachVehicle(permitID, license string) ([]*Permit, error)
	DeletePermit(permitID string) error
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

// permitView folds a logical permit's rows into one response object.
func permitView(rows []*Permit) map[string]interface{} {
	head := rows[0]
	return map[string]interface{}{
		"permit_id":       head.PermitID,
		"permit_type":     head.PermitType,
		"zone_id":         head.ZoneID,
		"driver_id":       head.DriverID,
		"space_type":      head.SpaceType,
		"start_date":      head.StartDate.Format(DateLayout),
		"expiration_date": head.ExpirationDate.Format(DateLayout),
		"expiration_time": head.ExpirationTime,
		"vehicles":        Vehicles(rows),
	}
}

func (h *Handler) CreatePermit(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreatePermit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.CreatePermit(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, permitView([]*Permit{p}))
}

// AssignPermit issues a permit for the driver named in the URL.
func (h *Handler) AssignPermit(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AssignPermit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.AssignToDriver(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, permitView([]*Permit{p}))
}

func (h *Handler) GetPermit(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.GetPermit(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, permitView(rows))
}

func (h *Handler) ListPermits(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	rows, err := h.Service.ListPermits(limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"permits": groupViews(rows)})
}

// GetDriverPermits lists the permits held by one driver.
func (h *Handler) GetDriverPermits(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.GetDriverPermits(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"permits": groupViews(rows)})
}

func (h *Handler) UpdatePermit(w http.ResponseWriter, r *http.Request) {
	var dto UpdatePermitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdatePermit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rows, err := h.Service.UpdatePermit(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, permitView(rows))
}

func (h *Handler) AttachVehicle(w http.ResponseWriter, r *http.Request) {
	var dto AttachVehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AttachVehicle: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rows, err := h.Service.AttachVehicle(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, permitView(rows))
}

func (h *Handler) DetachVehicle(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.DetachVehicle(chi.URLParam(r, "id"), chi.URLParam(r, "license"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, permitView(rows))
}

func (h *Handler) DeletePermit(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeletePermit(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// groupViews rebuilds per-permit views from a flat row listing.
func groupViews(rows []*Permit) []map[string]interface{} {
	var order []string
	grouped := make(map[string][]*Permit)
	for _, row := range rows {
		if _, ok := grouped[row.PermitID]; !ok {
			order = append(order, row.PermitID)
		}
		grouped[row.PermitID] = append(grouped[row.PermitID], row)
	}

	views := make([]map[string]interface{}, 0, len(order))
	for _, id := range order {
		views = append(views, permitView(grouped[id]))
	}
	return views
}
