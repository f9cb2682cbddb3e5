package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"bridge/internal/app"
	"bridge/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// rpcSeatToken issues a signed token binding the calling user to a seat at a
// match. Clients present it when rejoining after a disconnect to reclaim the
// same seat.
//
// Payload: {"match_id": "...", "seat": "N"|"E"|"S"|"W"}
func rpcSeatToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userId == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}

	var req struct {
		MatchID string `json:"match_id"`
		Seat    string `json:"seat"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}
	if req.MatchID == "" {
		return "", runtime.NewError("Match ID required", 3)
	}
	seat, err := domain.ParseSeat(req.Seat)
	if err != nil {
		return "", runtime.NewError("Invalid seat", 3)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	tokens := tokenServiceFromEnv(env, logger)
	token, err := tokens.GenerateSeatToken(userId, req.MatchID, seat)
	if err != nil {
		logger.Error("Failed to generate seat token: %v", err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}

	res := map[string]string{"token": token}
	resBytes, _ := json.Marshal(res)
	return string(resBytes), nil
}

// tokenServiceFromEnv builds the seat token service from the runtime env,
// falling back to test credentials when none are configured. The same service
// verifies tokens at match join, so issue and verify must share this config.
func tokenServiceFromEnv(env map[string]string, logger runtime.Logger) *app.TableTokenService {
	secret := env["bridge_token_secret"]
	issuer := env["bridge_token_issuer"]
	if secret == "" || issuer == "" {
		secret = "test-secret"
		issuer = "test-issuer"
		logger.Warn("Seat token credentials missing from env, using test defaults.")
	}
	return app.NewTableTokenService(secret, issuer, 0)
}
