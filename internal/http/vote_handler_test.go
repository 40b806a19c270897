package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
	"github.com/ma-weihao/PokerFaceOff-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCastVoteHandler_Success(t *testing.T) {
	var got service.CastVoteRequest
	votes := &stubVoteService{
		castVoteFn: func(ctx context.Context, req service.CastVoteRequest) error {
			got = req
			return nil
		},
	}
	h := NewVoteHandler(votes, zap.NewNop())

	body := `{"user_id":"user-1","vote_value":"5"}`
	req := httptest.NewRequest(http.MethodPost, "/poker/api/v1/votes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "5", got.VoteValue)
}

func TestCastVoteHandler_MemberNotFoundIs404(t *testing.T) {
	votes := &stubVoteService{
		castVoteFn: func(ctx context.Context, req service.CastVoteRequest) error {
			return domain.NewNotFoundError("user", req.UserID)
		},
	}
	h := NewVoteHandler(votes, zap.NewNop())

	body := `{"user_id":"missing","vote_value":"5"}`
	req := httptest.NewRequest(http.MethodPost, "/poker/api/v1/votes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCastVoteHandler_GetIs404(t *testing.T) {
	h := NewVoteHandler(&stubVoteService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/poker/api/v1/votes", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRevealRoundHandler_Success(t *testing.T) {
	var gotRoundID string
	rounds := &stubRoundService{
		revealRoundFn: func(ctx context.Context, roundID string) error {
			gotRoundID = roundID
			return nil
		},
	}
	h := NewRoundHandler(rounds, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/poker/api/v1/rounds/round-2/reveal", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "round-2", gotRoundID)
}

func TestRevealRoundHandler_NotFoundIs404(t *testing.T) {
	rounds := &stubRoundService{
		revealRoundFn: func(ctx context.Context, roundID string) error {
			return domain.NewNotFoundError("round", roundID)
		},
	}
	h := NewRoundHandler(rounds, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/poker/api/v1/rounds/missing/reveal", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRevealRoundHandler_MissingRoundIDIs404(t *testing.T) {
	h := NewRoundHandler(&stubRoundService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/poker/api/v1/rounds//reveal", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
