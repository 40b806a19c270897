package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（请求分发属于外部协作者，随时可换传输层）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler 支持 http.Handler 接口
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterPokerRoutes 注册估点会话全部路由
func (r *Router) RegisterPokerRoutes(rooms *RoomHandler, rounds *RoundHandler, votes *VoteHandler, users *UserHandler) {
	r.HandleHandler("/poker/api/v1/rooms", rooms)
	r.HandleHandler("/poker/api/v1/rooms/", rooms)

	r.HandleHandler("/poker/api/v1/rounds/", rounds)

	r.HandleHandler("/poker/api/v1/votes", votes)

	r.HandleHandler("/poker/api/v1/users/", users)
}

// RegisterHealthRoutes 健康检查
func (r *Router) RegisterHealthRoutes() {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
