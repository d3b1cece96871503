package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/senyabanana/records-browser/internal/browser"
	"github.com/senyabanana/records-browser/internal/models"
	"github.com/senyabanana/records-browser/internal/render"
	"github.com/senyabanana/records-browser/internal/utils"

	"go.uber.org/zap"
)

// SessionCookie - имя cookie с идентификатором сессии.
const SessionCookie = "rb_session"

// BrowserHandler обслуживает HTML-страницу и команды сессии.
type BrowserHandler struct {
	Sessions   *browser.SessionStore
	Logger     *zap.Logger
	SessionTTL time.Duration
}

// NewBrowserHandler создаёт новый экземпляр BrowserHandler.
func NewBrowserHandler(sessions *browser.SessionStore, logger *zap.Logger, sessionTTL time.Duration) *BrowserHandler {
	return &BrowserHandler{Sessions: sessions, Logger: logger, SessionTTL: sessionTTL}
}

// commandRequest - тело POST /api/session/commands.
type commandRequest struct {
	Type    string         `json:"type"`
	Filters models.Filters `json:"filters"`
	Delta   int            `json:"delta"`
	Page    int            `json:"page"`
	Size    int            `json:"size"`
}

// stateResponse - состояние сессии для JSON-ответов.
type stateResponse struct {
	browser.State
	SummaryText string `json:"summaryText"`
	PageInfo    string `json:"pageInfo"`
}

func newStateResponse(state browser.State) stateResponse {
	return stateResponse{State: state, SummaryText: state.SummaryText(), PageInfo: state.PageInfo()}
}

// session находит (или создаёт) контроллер сессии и обновляет cookie.
func (h *BrowserHandler) session(w http.ResponseWriter, r *http.Request) (*browser.Controller, bool) {
	var id string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		id = cookie.Value
	}
	controller, id, created := h.Sessions.Get(id)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return controller, created
}

// commandFromQuery переводит параметры формы в команду. Все действия
// идемпотентны: обновление страницы в браузере повторяет ту же загрузку.
func commandFromQuery(r *http.Request) browser.Command {
	query := r.URL.Query()
	switch query.Get("action") {
	case "apply":
		return browser.ApplyFilters{
			Filters:  utils.ParseFilters(query),
			PageSize: utils.ParsePageSize(query.Get("page_size")),
		}
	case "clear":
		return browser.ClearFilters{}
	case "page":
		return browser.GoToPage{Page: utils.ParsePage(query.Get("page"))}
	case "page_size":
		return browser.ChangePageSize{Size: utils.ParsePageSize(query.Get("page_size"))}
	default:
		return browser.Reload{}
	}
}

// Page обрабатывает GET / и отрисовывает HTML-страницу сессии.
func (h *BrowserHandler) Page(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	controller, _ := h.session(w, r)
	state, err := controller.Dispatch(r.Context(), commandFromQuery(r))
	if err != nil && r.Context().Err() != nil {
		return
	}
	if errors.Is(err, browser.ErrSuperseded) {
		state = controller.State()
	}

	view := render.PageView{
		Filters:      state.Filters,
		PageSize:     state.PageSize,
		Status:       state.Status,
		Summary:      state.SummaryText(),
		PageInfo:     state.PageInfo(),
		Rows:         state.Rows,
		EmptyMessage: state.EmptyMessage,
		PrevPage:     state.Page - 1,
		NextPage:     state.Page + 1,
		PrevDisabled: state.PrevDisabled,
		NextDisabled: state.NextDisabled,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := render.WritePage(w, view); err != nil {
		h.Logger.Warn("failed to render page", zap.Error(err))
	}
}

// Command обрабатывает POST /api/session/commands.
func (h *BrowserHandler) Command(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, "invalid request body")
		return
	}

	var cmd browser.Command
	switch req.Type {
	case "apply_filters":
		cmd = browser.ApplyFilters{Filters: req.Filters, PageSize: req.Size}
	case "clear_filters":
		cmd = browser.ClearFilters{}
	case "change_page":
		cmd = browser.ChangePage{Delta: req.Delta}
	case "go_to_page":
		cmd = browser.GoToPage{Page: req.Page}
	case "change_page_size":
		cmd = browser.ChangePageSize{Size: req.Size}
	case "reload":
		cmd = browser.Reload{}
	default:
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, "unsupported command type: "+req.Type)
		return
	}

	controller, _ := h.session(w, r)
	state, err := controller.Dispatch(r.Context(), cmd)
	switch {
	case err == nil:
	case errors.Is(err, browser.ErrSuperseded):
		utils.SendErrorResponse(w, h.Logger, http.StatusConflict, "request superseded by a newer one")
		return
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		return
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, newStateResponse(state))
}

// State обрабатывает GET /api/session и возвращает состояние без загрузки.
func (h *BrowserHandler) State(w http.ResponseWriter, r *http.Request) {
	controller, _ := h.session(w, r)
	utils.SendJSON(w, h.Logger, http.StatusOK, newStateResponse(controller.State()))
}
