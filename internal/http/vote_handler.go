package httpapi

import (
	"net/http"

	"github.com/ma-weihao/PokerFaceOff-server/internal/service"

	"go.uber.org/zap"
)

// VoteHandler 投票Handler
type VoteHandler struct {
	voteService service.VoteService
	logger      *zap.Logger
}

// NewVoteHandler 创建投票Handler
func NewVoteHandler(voteService service.VoteService, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{voteService: voteService, logger: logger}
}

// ServeHTTP 实现 http.Handler 接口
func (h *VoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/poker/api/v1/votes" || r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.CastVote(w, r)
}

// CastVoteBody 投票请求体
type CastVoteBody struct {
	UserID    string `json:"user_id"`
	VoteValue string `json:"vote_value"`
}

// CastVote 投票
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body CastVoteBody
	if err := readBodyJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	err := h.voteService.CastVote(ctx, service.CastVoteRequest{
		UserID:    body.UserID,
		VoteValue: body.VoteValue,
	})
	if err != nil {
		h.logger.Error("CastVote failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{}))
}
