package category

import (
	"net/http"

	"cashbox/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler(base *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: base}
}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// GetCategories lists the reference categories, optionally filtered by the
// ?type=INCOME|EXPENSE query parameter.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	var categories []Category

	switch Type(r.URL.Query().Get("type")) {
	case TypeIncome:
		categories = ForType(TypeIncome)
	case TypeExpense:
		categories = ForType(TypeExpense)
	default:
		categories = All()
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}
