package app

import (
	"fmt"
	"math/rand"
	"time"

	"bridge/internal/domain"

	"github.com/form3tech-oss/jwt-go"
)

// TableTokenService issues and verifies signed seat tokens. A token binds a
// user to a seat at a specific match so a dropped client can rejoin its own
// seat (and no other) without re-running the lobby flow.
type TableTokenService struct {
	secret string
	issuer string
	ttl    time.Duration
}

// SeatClaims is the verified content of a seat token.
type SeatClaims struct {
	UserID  string
	MatchID string
	Seat    domain.Seat
}

// NewTableTokenService constructs a token service. A zero ttl defaults to
// one hour.
func NewTableTokenService(secret, issuer string, ttl time.Duration) *TableTokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TableTokenService{secret: secret, issuer: issuer, ttl: ttl}
}

// GenerateSeatToken signs a token for the given user, match and seat.
func (s *TableTokenService) GenerateSeatToken(userID, matchID string, seat domain.Seat) (string, error) {
	if s == nil {
		return "", fmt.Errorf("table token service is nil")
	}
	if userID == "" || matchID == "" {
		return "", fmt.Errorf("user and match are required")
	}
	if !seat.Valid() {
		return "", fmt.Errorf("invalid seat %d", seat)
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("token config is incomplete")
	}

	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"sub":  userID,
		"exp":  time.Now().Add(s.ttl).Unix(),
		"jti":  fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
		"mid":  matchID,
		"seat": seat.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifySeatToken parses and validates a seat token, returning its claims.
func (s *TableTokenService) VerifySeatToken(tokenString string) (SeatClaims, error) {
	if s == nil {
		return SeatClaims{}, fmt.Errorf("table token service is nil")
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return SeatClaims{}, fmt.Errorf("invalid seat token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return SeatClaims{}, fmt.Errorf("invalid seat token claims")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return SeatClaims{}, fmt.Errorf("seat token issuer mismatch")
	}

	userID, _ := claims["sub"].(string)
	matchID, _ := claims["mid"].(string)
	seatCode, _ := claims["seat"].(string)
	seat, err := domain.ParseSeat(seatCode)
	if err != nil {
		return SeatClaims{}, fmt.Errorf("seat token seat: %w", err)
	}
	if userID == "" || matchID == "" {
		return SeatClaims{}, fmt.Errorf("seat token missing subject or match")
	}

	return SeatClaims{UserID: userID, MatchID: matchID, Seat: seat}, nil
}
