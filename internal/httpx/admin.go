package httpx

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/carlaolanches/printer-server/internal/dispatch"
	"github.com/carlaolanches/printer-server/internal/domain"
)

// printTimeout bounds how long an admin print request waits for its turn
// at the device. Hitting it fails the request without touching the
// printer; the operator just clicks Imprimir again.
const printTimeout = 30 * time.Second

const adminHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Painel de Pedidos</title></head>
<body>
<h2>Painel de Pedidos — Carlão Lanches</h2>
<p><a href="/admin?key={{.Key}}">Atualizar</a></p>
{{range .Orders}}
<div style="border:1px solid #ddd;padding:8px;margin:8px 0;">
  <b>ID:</b> {{.ID}} — {{.CreatedAt}} — <i>{{.Status}}</i><br/>
  <pre>{{.Payload}}</pre>
  <form method="POST" action="/admin/print" style="display:inline">
    <input type="hidden" name="id" value="{{.ID}}" />
    <input type="hidden" name="key" value="{{$.Key}}" />
    <button type="submit">Imprimir</button>
  </form>
</div>
{{end}}
</body>
</html>`

var adminTemplate = template.Must(template.New("admin").Parse(adminHTML))

type adminOrderView struct {
	ID        string
	CreatedAt string
	Status    domain.Status
	Payload   string
}

type adminPageData struct {
	Key    string
	Orders []adminOrderView
}

func (h *Handler) adminAuthorized(key string) bool {
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) == 1
}

// Admin renders the operator panel: all orders newest-first, each with a
// print button. Protected by the shared key as a query parameter, same as
// the storefront's integration predates per-user auth.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	if !h.adminAuthorized(r.URL.Query().Get("key")) {
		http.Error(w, "401 - unauthorized", http.StatusUnauthorized)
		return
	}

	records, err := h.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "admin list failed", "error", err)
		http.Error(w, "erro ao carregar pedidos", http.StatusInternalServerError)
		return
	}

	views := make([]adminOrderView, 0, len(records))
	for _, rec := range records {
		payload, err := json.MarshalIndent(rec.Order, "", "  ")
		if err != nil {
			payload = []byte(err.Error())
		}
		views = append(views, adminOrderView{
			ID:        rec.ID,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
			Status:    rec.Status,
			Payload:   string(payload),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := adminTemplate.Execute(w, adminPageData{Key: h.adminKey, Orders: views}); err != nil {
		slog.ErrorContext(r.Context(), "admin render failed", "error", err)
	}
}

// AdminPrint is the single operator action: print this order.
func (h *Handler) AdminPrint(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if !h.adminAuthorized(r.PostFormValue("key")) {
		http.Error(w, "401 - unauthorized", http.StatusUnauthorized)
		return
	}
	id := r.PostFormValue("id")
	if id == "" {
		http.Error(w, "id obrigatório", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), printTimeout)
	defer cancel()

	result, err := h.dispatcher.PrintOrder(ctx, id)
	if errors.Is(err, dispatch.ErrOrderNotFound) {
		http.Error(w, "Pedido não encontrado", http.StatusNotFound)
		return
	}
	var pErr *dispatch.PrintError
	if errors.As(err, &pErr) {
		slog.ErrorContext(r.Context(), "admin print failed", "order_id", id, "reason", pErr.Reason)
		http.Error(w, "Erro ao imprimir: "+pErr.Reason, http.StatusInternalServerError)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "admin print failed", "order_id", id, "error", err)
		http.Error(w, "Erro ao imprimir", http.StatusInternalServerError)
		return
	}

	msg := "Impressão enviada com sucesso."
	if result.Reprinted {
		msg = "Reimpressão enviada (pedido já estava impresso)."
	}

	back := "/admin?" + url.Values{"key": {h.adminKey}}.Encode()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `%s <a href="%s">Voltar</a>`, template.HTMLEscapeString(msg), back)
}
