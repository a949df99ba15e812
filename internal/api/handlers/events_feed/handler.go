package events_feed

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/jeffjr007/locahubaju-project/internal/api/handlers"
	"github.com/jeffjr007/locahubaju-project/internal/api/middleware"
)

const msgUnauthorized = "autenticação necessária"

type Handler struct {
	feed     Feed
	upgrader websocket.Upgrader
	logger   Logger
}

// NewHandler allowedOrigins - те же origin, что и в CORS; пустой список или "*" разрешает любой
func NewHandler(feed Feed, allowedOrigins []string, logger Logger) *Handler {
	return &Handler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

// Handle GET /api/v1/events/ws
// Доступ только администраторам (RequireAdmin ставится на роутере)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже записал ответ с ошибкой
		h.logger.Warn("GET /events/ws - Upgrade failed: user_id=%s, error=%v", actor.UserID, err)
		return
	}

	h.feed.Serve(conn, actor.UserID)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(set) == 0 {
			return true
		}
		_, ok := set[strings.TrimRight(origin, "/")]
		return ok
	}
}
