package handlers

import (
	"net/http"

	"github.com/framez-app/backend/internal/services"
	"github.com/framez-app/backend/pkg/errs"
	"github.com/labstack/echo/v4"
)

// ReconcileHandler exposes the counter repair tool. It is an operational
// endpoint, not part of the normal request path. The recount walks every
// row in the database and there is no role model here, so deployments
// must restrict the route (network policy or gateway ACL) rather than
// leave it open to any authenticated user.
type ReconcileHandler struct {
	reconcileService *services.ReconcileService
}

// NewReconcileHandler creates a new ReconcileHandler
func NewReconcileHandler(reconcileService *services.ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{reconcileService: reconcileService}
}

// RegisterReconcileRoutes registers admin reconciliation routes
func (h *ReconcileHandler) RegisterReconcileRoutes(g *echo.Group) {
	g.POST("/admin/reconcile", h.Reconcile)
}

// Reconcile recomputes every denormalized counter from its edge table
func (h *ReconcileHandler) Reconcile(c echo.Context) error {
	if !getCaller(c).Authenticated() {
		return httpError(errs.ErrUnauthenticated)
	}
	report, err := h.reconcileService.RecountAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}
