package clinics

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthealth-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the clinics service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public clinic search route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/clinics", h.listClinics)
}

// RegisterAdminRoutes attaches clinic management routes. The caller is
// expected to gate the group with an admin check.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/clinics", h.createClinic)
	rg.GET("/clinics/:id", h.getClinic)
	rg.PUT("/clinics/:id", h.updateClinic)
	rg.DELETE("/clinics/:id", h.deleteClinic)
}

func (h *Handler) listClinics(c *gin.Context) {
	filter := Filter{
		County:    c.Query("county"),
		Service:   c.Query("service"),
		PriceBand: PriceBand(c.Query("priceBand")),
	}

	listing, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid filter", []map[string]string{
				{"field": verr.Field, "issue": verr.Issue},
			})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "persistence_error", "failed to list clinics", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"clinics": listing})
}

type clinicPayload struct {
	Name              string `json:"name"`
	County            string `json:"county"`
	LocationCoords    string `json:"locationCoords"`
	AvailableServices string `json:"availableServices"`
	PriceBand         string `json:"priceBand"`
	ContactPhone      string `json:"contactPhone"`
	IsNHIFAccredited  bool   `json:"isNHIFAccredited"`
}

func (p clinicPayload) toClinic() Clinic {
	return Clinic{
		Name:              p.Name,
		County:            p.County,
		LocationCoords:    p.LocationCoords,
		AvailableServices: p.AvailableServices,
		PriceBand:         PriceBand(p.PriceBand),
		ContactPhone:      p.ContactPhone,
		IsNHIFAccredited:  p.IsNHIFAccredited,
	}
}

func (h *Handler) createClinic(c *gin.Context) {
	var payload clinicPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid clinic payload", nil)
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), payload.toClinic())
	if err != nil {
		h.writeError(c, err, "failed to create clinic")
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) getClinic(c *gin.Context) {
	clinic, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch clinic")
		return
	}
	respond.JSON(c, http.StatusOK, clinic)
}

func (h *Handler) updateClinic(c *gin.Context) {
	var payload clinicPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid clinic payload", nil)
		return
	}

	clinic := payload.toClinic()
	clinic.ID = c.Param("id")
	updated, err := h.Svc.Update(c.Request.Context(), clinic)
	if err != nil {
		h.writeError(c, err, "failed to update clinic")
		return
	}
	respond.JSON(c, http.StatusOK, updated)
}

func (h *Handler) deleteClinic(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete clinic")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid clinic", []map[string]string{
			{"field": verr.Field, "issue": verr.Issue},
		})
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "clinic not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "persistence_error", fallback, nil)
	}
}
