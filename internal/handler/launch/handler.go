package launch

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/launchboard/backend/internal/model/launch"
	"github.com/zhouzirui/launchboard/backend/pkg/utils"
)

// Lister returns the full launch list.
type Lister interface {
	List(ctx context.Context) ([]launch.Launch, error)
}

// Settings is the dashboard configuration exposed to the browser bundle.
type Settings struct {
	Title    string          `json:"title"`
	Statuses []launch.Status `json:"statuses"`
}

// Handler launch服务的HTTP处理器
type Handler struct {
	launches Lister
	settings Settings
}

// New 创建launch处理器
func New(launches Lister, settings Settings) *Handler {
	if len(settings.Statuses) == 0 {
		settings.Statuses = launch.DefaultStatuses()
	}
	return &Handler{
		launches: launches,
		settings: settings,
	}
}

// RegisterRoutes 注册launch相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/launches", h.handleListLaunches)
	r.Get("/dashboard", h.handleDashboard)
}

// handleListLaunches 返回全部发射记录，不接受任何查询参数
func (h *Handler) handleListLaunches(w http.ResponseWriter, r *http.Request) {
	items, err := h.launches.List(r.Context())
	if err != nil {
		log.Printf("[launch] request_id=%s error querying store: %v", middleware.GetReqID(r.Context()), err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch launches")
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.settings)
}
