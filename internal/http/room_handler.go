package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ma-weihao/PokerFaceOff-server/internal/service"

	"go.uber.org/zap"
)

// RoomHandler 房间子树Handler：创建/加入/回合推进/状态/历史导出
type RoomHandler struct {
	roomService   service.RoomService
	memberService service.MemberService
	roundService  service.RoundService
	statusService service.StatusService
	logger        *zap.Logger
}

// NewRoomHandler 创建房间Handler
func NewRoomHandler(
	roomService service.RoomService,
	memberService service.MemberService,
	roundService service.RoundService,
	statusService service.StatusService,
	logger *zap.Logger,
) *RoomHandler {
	return &RoomHandler{
		roomService:   roomService,
		memberService: memberService,
		roundService:  roundService,
		statusService: statusService,
		logger:        logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 路由分发
	path := r.URL.Path
	switch {
	// CreateRoom
	case path == "/poker/api/v1/rooms" && r.Method == http.MethodPost:
		h.CreateRoom(w, r)
		return
	case !strings.HasPrefix(path, "/poker/api/v1/rooms/"):
		w.WriteHeader(http.StatusNotFound)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/poker/api/v1/rooms/")
	roomID, action, _ := strings.Cut(rest, "/")
	if roomID == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch {
	// JoinRoom
	case action == "join" && r.Method == http.MethodPost:
		h.JoinRoom(w, r, roomID)
	// NextRound
	case action == "rounds/next" && r.Method == http.MethodPost:
		h.NextRound(w, r, roomID)
	// FetchStatus
	case action == "status" && r.Method == http.MethodGet:
		h.FetchStatus(w, r, roomID)
	// HistoryExport
	case action == "history/export" && r.Method == http.MethodGet:
		h.ExportHistory(w, r, roomID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// CreateRoomBody 创建房间请求体
type CreateRoomBody struct {
	RoomName          string `json:"room_name"`
	CreatedByIdentity string `json:"created_by_identity"`
	UserName          string `json:"user_name"`
	AvatarURL         string `json:"avatar_url"`
}

// CreateRoom 创建房间
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body CreateRoomBody
	if err := readBodyJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.roomService.CreateRoom(ctx, service.CreateRoomRequest{
		RoomName:        body.RoomName,
		CreatedByOpenID: body.CreatedByIdentity,
		UserName:        body.UserName,
		AvatarURL:       body.AvatarURL,
	})
	if err != nil {
		h.logger.Error("CreateRoom failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"room_id": resp.RoomID,
		"user_id": resp.UserID,
	}))
}

// JoinRoomBody 加入房间请求体
type JoinRoomBody struct {
	UserName  string `json:"user_name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
	Identity  string `json:"identity,omitempty"`
}

// JoinRoom 加入房间
func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request, roomID string) {
	ctx := r.Context()

	var body JoinRoomBody
	if err := readBodyJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.memberService.JoinRoom(ctx, service.JoinRoomRequest{
		RoomID:    roomID,
		UserName:  body.UserName,
		AvatarURL: body.AvatarURL,
		Role:      body.Role,
		OpenID:    body.Identity,
	})
	if err != nil {
		h.logger.Error("JoinRoom failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"user_id": resp.UserID,
	}))
}

// NextRound 进入下一回合
func (h *RoomHandler) NextRound(w http.ResponseWriter, r *http.Request, roomID string) {
	ctx := r.Context()

	if err := h.roundService.NextRound(ctx, roomID); err != nil {
		h.logger.Error("NextRound failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{}))
}

// FetchStatus 获取房间状态
func (h *RoomHandler) FetchStatus(w http.ResponseWriter, r *http.Request, roomID string) {
	ctx := r.Context()

	resp, err := h.statusService.FetchStatus(ctx, roomID)
	if err != nil {
		h.logger.Error("FetchStatus failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok(resp))
}

// ExportHistory 导出房间历史Excel
func (h *RoomHandler) ExportHistory(w http.ResponseWriter, r *http.Request, roomID string) {
	ctx := r.Context()

	history, err := h.statusService.RoomHistory(ctx, roomID)
	if err != nil {
		h.logger.Error("ExportHistory failed", zap.Error(err))
		writeError(w, err)
		return
	}

	data, err := GenerateRoomHistoryExport(history)
	if err != nil {
		h.logger.Error("ExportHistory generate failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="room_%s_history.xlsx"`, roomID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
