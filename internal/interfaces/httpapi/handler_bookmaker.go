package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListBookmakers(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListBookmakers")
	defer span.End()

	entries := h.bookmakers.Known()
	items := make([]bookmakerDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, bookmakerDTO{Name: e.Name, ID: e.ID})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ResolveBookmaker(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ResolveBookmaker")
	defer span.End()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if err := h.validateRequest(ctx, resolveBookmakerQuery{Name: name}); err != nil {
		writeError(ctx, w, err)
		return
	}

	id := h.bookmakers.Resolve(name)
	writeSuccess(ctx, w, http.StatusOK, resolvedBookmakerDTO{
		Name:    name,
		ID:      id,
		Unknown: id == h.bookmakers.UnknownID(),
	})
}
