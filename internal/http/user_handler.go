package httpapi

import (
	"net/http"
	"strings"

	"github.com/ma-weihao/PokerFaceOff-server/internal/service"

	"go.uber.org/zap"
)

// UserHandler 成员资料Handler：编辑资料 / 切换角色
type UserHandler struct {
	memberService service.MemberService
	logger        *zap.Logger
}

// NewUserHandler 创建成员Handler
func NewUserHandler(memberService service.MemberService, logger *zap.Logger) *UserHandler {
	return &UserHandler{memberService: memberService, logger: logger}
}

// ServeHTTP 实现 http.Handler 接口
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 路由分发
	path := r.URL.Path
	switch {
	// EditProfile
	case strings.HasSuffix(path, "/profile") && r.Method == http.MethodPut:
		userID := strings.TrimSuffix(path, "/profile")
		userID = strings.TrimPrefix(userID, "/poker/api/v1/users/")
		if userID != "" && !strings.Contains(userID, "/") {
			h.EditProfile(w, r, userID)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	// ChangeRole
	case strings.HasSuffix(path, "/role") && r.Method == http.MethodPut:
		userID := strings.TrimSuffix(path, "/role")
		userID = strings.TrimPrefix(userID, "/poker/api/v1/users/")
		if userID != "" && !strings.Contains(userID, "/") {
			h.ChangeRole(w, r, userID)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// EditProfileBody 编辑资料请求体（缺省字段不更新）
type EditProfileBody struct {
	Role      *string `json:"role"`
	UserName  *string `json:"user_name"`
	AvatarURL *string `json:"avatar_url"`
}

// EditProfile 编辑资料
func (h *UserHandler) EditProfile(w http.ResponseWriter, r *http.Request, userID string) {
	ctx := r.Context()

	var body EditProfileBody
	if err := readBodyJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	err := h.memberService.EditProfile(ctx, service.EditProfileRequest{
		UserID:    userID,
		Role:      body.Role,
		UserName:  body.UserName,
		AvatarURL: body.AvatarURL,
	})
	if err != nil {
		h.logger.Error("EditProfile failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{}))
}

// ChangeRoleBody 切换角色请求体
type ChangeRoleBody struct {
	Role string `json:"role"`
}

// ChangeRole 切换角色（无条件清除该成员投票）
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request, userID string) {
	ctx := r.Context()

	var body ChangeRoleBody
	if err := readBodyJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	err := h.memberService.ChangeRole(ctx, service.ChangeRoleRequest{
		UserID: userID,
		Role:   body.Role,
	})
	if err != nil {
		h.logger.Error("ChangeRole failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{}))
}
