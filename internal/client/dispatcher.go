package client

import (
	"fmt"
	"sync"
	"time"

	"bridge/internal/bot"
	"bridge/internal/domain"
	"bridge/internal/wire"

	"go.uber.org/zap"
)

// SubmitFunc sends an action to the server. The payload is one of the wire
// request types and is marshalled by the transport.
type SubmitFunc func(opCode int64, payload any) error

// Dispatcher drives a locally controlled seat from confirmed snapshots. It
// acts at most once per snapshot version: a thinking flag suppresses
// re-entrant submissions until the server confirms the action with a newer
// snapshot, and a watchdog clears the flag if that confirmation never comes
// (a rejected action produces no new version).
type Dispatcher struct {
	agent   *bot.Agent
	seat    domain.Seat
	submit  SubmitFunc
	timeout time.Duration
	logger  *zap.Logger

	mu           sync.Mutex
	thinking     bool
	actedVersion uint64
	watchdog     *time.Timer
}

// NewDispatcher creates a dispatcher for the given seat. A zero timeout
// defaults to ten seconds.
func NewDispatcher(agent *bot.Agent, seat domain.Seat, submit SubmitFunc, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		agent:   agent,
		seat:    seat,
		submit:  submit,
		timeout: timeout,
		logger:  logger.Named("dispatcher"),
	}
}

// OnSnapshot feeds a confirmed snapshot to the dispatcher. Call it once per
// snapshot accepted by the Store.
func (d *Dispatcher) OnSnapshot(snap wire.Snapshot) {
	d.mu.Lock()

	// A newer version than the one we acted on confirms (or supersedes)
	// the pending action.
	if d.thinking && snap.Version > d.actedVersion {
		d.stopWatchdogLocked()
		d.thinking = false
	}
	if d.thinking {
		d.mu.Unlock()
		return
	}
	if snap.Phase != string(domain.PhaseBidding) && snap.Phase != string(domain.PhasePlaying) {
		d.mu.Unlock()
		return
	}
	if !d.controlsTurn(snap) {
		d.mu.Unlock()
		return
	}

	d.thinking = true
	d.actedVersion = snap.Version
	d.watchdog = time.AfterFunc(d.timeout, d.onWatchdog)
	d.mu.Unlock()

	if err := d.act(snap); err != nil {
		d.logger.Warn("action failed", zap.Error(err))
		d.mu.Lock()
		d.stopWatchdogLocked()
		d.thinking = false
		d.mu.Unlock()
	}
}

func (d *Dispatcher) onWatchdog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.thinking {
		d.logger.Warn("watchdog cleared stuck turn", zap.Uint64("version", d.actedVersion))
		d.thinking = false
	}
}

func (d *Dispatcher) stopWatchdogLocked() {
	if d.watchdog != nil {
		d.watchdog.Stop()
		d.watchdog = nil
	}
}

// controlsTurn reports whether this dispatcher's seat is entitled to act:
// its own turn, or the dummy's turn when this seat declared.
func (d *Dispatcher) controlsTurn(snap wire.Snapshot) bool {
	controller := snap.CurrentTurn
	if snap.Dummy != "" && snap.Dummy == snap.CurrentTurn && snap.Contract != nil {
		controller = snap.Contract.Declarer
	}
	return controller == d.seat.String()
}

func (d *Dispatcher) act(snap wire.Snapshot) error {
	game, turnSeat, err := gameFromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("rebuild game: %w", err)
	}

	action, err := d.agent.Act(game, turnSeat)
	if err != nil {
		return fmt.Errorf("agent: %w", err)
	}

	switch {
	case action.Bid != nil:
		return d.submit(wire.OpMakeBid, wire.MakeBidRequest{Bid: action.Bid.Code()})
	case action.Card != nil:
		return d.submit(wire.OpPlayCard, wire.PlayCardRequest{Card: action.Card.Code()})
	default:
		return fmt.Errorf("agent returned no action")
	}
}

// gameFromSnapshot rebuilds the domain state the agent needs from a redacted
// snapshot. Hidden hands stay empty; the policies only reason over visible
// cards, the auction and the trick in progress.
func gameFromSnapshot(snap wire.Snapshot) (*domain.Game, domain.Seat, error) {
	dealer, err := domain.ParseSeat(snap.Dealer)
	if err != nil {
		return nil, 0, fmt.Errorf("dealer: %w", err)
	}
	turn, err := domain.ParseSeat(snap.CurrentTurn)
	if err != nil {
		return nil, 0, fmt.Errorf("current turn: %w", err)
	}

	game := &domain.Game{
		DealID:          snap.DealID,
		Version:         snap.Version,
		Board:           snap.Board,
		Phase:           domain.Phase(snap.Phase),
		Dealer:          dealer,
		CurrentTurn:     turn,
		FirstCardPlayed: snap.FirstCardPlayed,
		Vulnerable:      domain.Vulnerability{NS: snap.VulnerableNS, EW: snap.VulnerableEW},
	}
	game.TricksWon[domain.PartnershipNS] = snap.TricksNS
	game.TricksWon[domain.PartnershipEW] = snap.TricksEW

	for seatCode, hand := range snap.Hands {
		seat, err := domain.ParseSeat(seatCode)
		if err != nil {
			return nil, 0, fmt.Errorf("hand seat: %w", err)
		}
		for _, code := range hand.Cards {
			card, err := domain.ParseCard(code)
			if err != nil {
				return nil, 0, fmt.Errorf("hand card: %w", err)
			}
			game.Hands[seat] = append(game.Hands[seat], card)
		}
	}

	for _, call := range snap.Auction {
		seat, err := domain.ParseSeat(call.Seat)
		if err != nil {
			return nil, 0, fmt.Errorf("auction seat: %w", err)
		}
		bid, err := domain.ParseBid(call.Bid)
		if err != nil {
			return nil, 0, fmt.Errorf("auction bid: %w", err)
		}
		game.Auction = append(game.Auction, domain.Call{Seat: seat, Bid: bid})
	}

	if snap.Contract != nil {
		declarer, err := domain.ParseSeat(snap.Contract.Declarer)
		if err != nil {
			return nil, 0, fmt.Errorf("declarer: %w", err)
		}
		strain, err := domain.ParseStrain(snap.Contract.Strain)
		if err != nil {
			return nil, 0, fmt.Errorf("strain: %w", err)
		}
		game.Contract = &domain.Contract{
			Level:     snap.Contract.Level,
			Strain:    strain,
			Declarer:  declarer,
			Doubled:   snap.Contract.Doubled,
			Redoubled: snap.Contract.Redoubled,
		}
	}
	if snap.Dummy != "" {
		dummy, err := domain.ParseSeat(snap.Dummy)
		if err != nil {
			return nil, 0, fmt.Errorf("dummy: %w", err)
		}
		game.Dummy = &dummy
	}

	if snap.CurrentTrick != nil {
		leader, err := domain.ParseSeat(snap.CurrentTrick.Leader)
		if err != nil {
			return nil, 0, fmt.Errorf("trick leader: %w", err)
		}
		trick := domain.NewTrick(leader)
		for seatCode, cardCode := range snap.CurrentTrick.Cards {
			seat, err := domain.ParseSeat(seatCode)
			if err != nil {
				return nil, 0, fmt.Errorf("trick seat: %w", err)
			}
			card, err := domain.ParseCard(cardCode)
			if err != nil {
				return nil, 0, fmt.Errorf("trick card: %w", err)
			}
			trick.Play(seat, card)
		}
		game.CurrentTrick = trick
	}

	return game, turn, nil
}
