package httpapi

import (
	"net/http"
	"strings"

	"github.com/ma-weihao/PokerFaceOff-server/internal/service"

	"go.uber.org/zap"
)

// RoundHandler 回合Handler：公开回合
type RoundHandler struct {
	roundService service.RoundService
	logger       *zap.Logger
}

// NewRoundHandler 创建回合Handler
func NewRoundHandler(roundService service.RoundService, logger *zap.Logger) *RoundHandler {
	return &RoundHandler{roundService: roundService, logger: logger}
}

// ServeHTTP 实现 http.Handler 接口
func (h *RoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	// RevealRound
	case strings.HasSuffix(path, "/reveal") && r.Method == http.MethodPost:
		roundID := strings.TrimSuffix(path, "/reveal")
		roundID = strings.TrimPrefix(roundID, "/poker/api/v1/rounds/")
		if roundID != "" && !strings.Contains(roundID, "/") {
			h.RevealRound(w, r, roundID)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// RevealRound 公开回合
func (h *RoundHandler) RevealRound(w http.ResponseWriter, r *http.Request, roundID string) {
	ctx := r.Context()

	if err := h.roundService.RevealRound(ctx, roundID); err != nil {
		h.logger.Error("RevealRound failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{}))
}
