package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"bridge/internal/app"
	"bridge/internal/bot"
	"bridge/internal/config"
	"bridge/internal/domain"
	"bridge/internal/wire"

	"github.com/heroiclabs/nakama-common/runtime"
)

// matchLabel is the queryable JSON label advertised for each table.
type matchLabel struct {
	Open  int    `json:"open"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [4]string                   `json:"seats"`      // Array of user IDs indexed by domain.Seat, empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // Seat index of the match owner
	Tick      int64                       `json:"tick"`       // Current tick of the match for turn-based logic
	Presences map[string]runtime.Presence `json:"-"`          // Map UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"`          // Bridge app service with game logic
	Game      *domain.Game                `json:"-"`          // Current deal (nil if in lobby)

	BotsEnabled          bool                  `json:"bots_enabled"`            // Whether AI players are allowed
	BotMinDelay          int                   `json:"bot_min_delay"`           // Min seconds a bot waits
	BotMaxDelay          int                   `json:"bot_max_delay"`           // Max seconds a bot waits
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"`     // Seconds to wait before auto-filling with bots
	BotWaitUntil         int64                 `json:"bot_wait_until"`          // Tick when the next bot should act
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"` // Tick when a single player started waiting
	TurnDuration         int                   `json:"turn_duration"`           // Seconds a human may hold the turn before a bot acts for it
	TurnStartedTick      int64                 `json:"turn_started_tick"`       // Tick when the current turn began
	LastSeenVersion      uint64                `json:"last_seen_version"`       // Game version at the last tick, for turn-clock resets
	Bots                 map[string]*bot.Agent `json:"-"`                       // Active bot agents

	Tokens       *app.TableTokenService `json:"-"` // Verifies seat tokens presented at join
	PendingSeats map[string]int         `json:"-"` // UserId -> seat index claimed by a verified token
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// seatOf returns the seat index occupied by the given user or -1.
func seatOf(seats []string, userId string) int {
	for i, occupant := range seats {
		if occupant != "" && occupant == userId {
			return i
		}
	}
	return -1
}

// authorizeRejoin checks a presented seat token against the joining user, this
// match and the current seat occupancy. It returns the claimed seat index and
// an empty reason on success, or -1 and the rejection reason. A seat whose
// occupant is another human is not reclaimable even with a valid token.
func authorizeRejoin(tokens *app.TableTokenService, token, userId, matchId string, seats []string) (int, string) {
	claims, err := tokens.VerifySeatToken(token)
	if err != nil {
		return -1, "invalid seat token"
	}
	if claims.UserID != userId {
		return -1, "seat token issued to another user"
	}
	if claims.MatchID != matchId {
		return -1, "seat token issued for another match"
	}
	seatIndex := int(claims.Seat)
	if seatIndex < 0 || seatIndex >= len(seats) {
		return -1, "seat token names an unknown seat"
	}
	occupant := seats[seatIndex]
	if occupant != "" && occupant != userId && !isBotUserId(occupant) {
		return -1, "seat no longer available"
	}
	return seatIndex, ""
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Tick:         time.Now().Unix(),
		Presences:    make(map[string]runtime.Presence),
		App:          app.NewService(nil),
		OwnerSeat:    -1,
		Bots:         make(map[string]*bot.Agent),
		PendingSeats: make(map[string]int),
	}

	// Environment variables override the bot configuration.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	state.Tokens = tokenServiceFromEnv(env, logger)
	if val, ok := env["bridge_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["bridge_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["bridge_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["bridge_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}
	if val, ok := env["bridge_turn_duration_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.TurnDuration = i
		}
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = int(config.BotAutoFillDelay() / time.Second)
	}
	if state.TurnDuration == 0 {
		state.TurnDuration = int(config.TurnDuration() / time.Second)
	}

	label := matchLabel{Open: state.GetOpenSeatsCount(), Phase: "lobby"}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// A returning player may always reclaim its own seat.
	if seatOf(matchState.Seats[:], presence.GetUserId()) >= 0 {
		return state, true, ""
	}

	// A seat token binds the user to a specific seat at this match; a valid
	// one admits the player even when no seat is open, as long as the claimed
	// seat is not held by another human.
	if token := metadata["seat_token"]; token != "" {
		matchId, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
		seatIndex, reason := authorizeRejoin(matchState.Tokens, token, presence.GetUserId(), matchId, matchState.Seats[:])
		if reason != "" {
			logger.Warn("MatchJoinAttempt: Seat token from %s rejected: %s", presence.GetUserId(), reason)
			return state, false, reason
		}
		if matchState.PendingSeats == nil {
			matchState.PendingSeats = make(map[string]int)
		}
		matchState.PendingSeats[presence.GetUserId()] = seatIndex
		return matchState, true, ""
	}

	// Otherwise allow join if there is an empty seat OR a bot to replace
	// while still in the lobby.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Returning player reclaims its own seat.
		if seatOf(matchState.Seats[:], p.GetUserId()) >= 0 {
			delete(matchState.PendingSeats, p.GetUserId())
			continue
		}

		// A verified seat token claims a specific seat.
		if claimed, ok := matchState.PendingSeats[p.GetUserId()]; ok {
			delete(matchState.PendingSeats, p.GetUserId())
			occupant := matchState.Seats[claimed]
			if occupant == "" || isBotUserId(occupant) {
				if occupant != "" {
					logger.Info("MatchJoin: Token rejoin replacing stand-in %s with %s in seat %d", occupant, p.GetUserId(), claimed)
					delete(matchState.Bots, occupant)
				}
				matchState.Seats[claimed] = p.GetUserId()
				continue
			}
			logger.Warn("MatchJoin: Seat %d claimed by %s was taken after the join attempt.", claimed, p.GetUserId())
		}

		// Assign seat: try empty seats first, then bots (if lobby).
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastTableState(matchState, dispatcher, logger)

	// A rejoining player needs the current deal; everyone else is unaffected.
	if matchState.Game != nil {
		mh.broadcastSnapshots(matchState, dispatcher, logger)
	}

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				if matchState.Game != nil {
					// Mid-deal the seat is kept so the player can rejoin
					// with a seat token; a bot covers the turns meanwhile.
					logger.Debug("MatchLeave: User %s disconnected mid-deal, seat %d held.", p.GetUserId(), i)
				} else {
					matchState.Seats[i] = ""
					logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
				}

				if matchState.OwnerSeat == i {
					ownerLeft = true
				}
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		} else if ownerLeft {
			logger.Debug("MatchLeave: Owner left and no human owner is available.")
		}
	}

	if matchState.Game == nil && shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}
	if matchState.Game != nil && len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no connected players.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastTableState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	// Reset the turn clock (and any pending bot delay) whenever the game
	// state advanced since the last tick.
	if matchState.Game != nil && matchState.Game.Version != matchState.LastSeenVersion {
		matchState.LastSeenVersion = matchState.Game.Version
		matchState.TurnStartedTick = tick
		matchState.BotWaitUntil = 0
	}

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case wire.OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case wire.OpMakeBid:
			mh.handleMakeBid(ctx, matchState, dispatcher, logger, msg)
		case wire.OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case wire.OpRequestNewGame:
			mh.handleRequestNewGame(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay.
	if state.Game == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						botID := identity.UserID
						state.Seats[i] = botID

						agent, err := bot.NewAgent(botID)
						if err != nil {
							logger.Error("processBots: Failed to create bot agent for %s: %v", botID, err)
						} else {
							state.Bots[botID] = agent
						}

						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastTableState(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle bot turns in-game. The declarer controls the dummy, so the
	// acting user is the controller's occupant, not the turn seat's.
	game := state.Game
	if game.Phase != domain.PhaseBidding && game.Phase != domain.PhasePlaying {
		return
	}

	turnSeat := game.CurrentTurn
	controller := game.Controller(turnSeat)
	actingUserID := state.Seats[controller]

	// A connected human keeps its turn until the turn clock runs out;
	// disconnected humans are covered by a stand-in bot immediately.
	_, connected := state.Presences[actingUserID]
	if !isBotUserId(actingUserID) && connected {
		if state.TurnDuration <= 0 || state.Tick-state.TurnStartedTick < int64(state.TurnDuration) {
			state.BotWaitUntil = 0
			return
		}
		logger.Info("processBots: Turn clock expired for %s (seat %d), acting on their behalf.", actingUserID, turnSeat)
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", actingUserID, turnSeat, state.BotWaitUntil, state.Tick)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[actingUserID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(actingUserID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[actingUserID] = agent
	}

	action, err := agent.Act(game, turnSeat)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate action: %v", actingUserID, err)
		return
	}

	var events []app.Event
	switch {
	case action.Bid != nil:
		events, err = state.App.MakeBid(game, turnSeat, *action.Bid)
	case action.Card != nil:
		events, err = state.App.PlayCard(game, controller, *action.Card)
	default:
		return
	}
	if err != nil {
		logger.Error("processBots: Bot %s action rejected: %v", actingUserID, err)
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := seatOf(state.Seats[:], senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.Game != nil {
		logger.Warn("StartGame: A deal is already in progress.")
		mh.sendError(state, dispatcher, logger, senderID, 409, app.ErrGameInProgress.Error())
		return
	}
	if state.GetOccupiedSeatCount() < app.PlayersPerTable {
		logger.Warn("StartGame: Cannot start with %d players. Need %d.", state.GetOccupiedSeatCount(), app.PlayersPerTable)
		return
	}

	game, events, err := state.App.StartGame(1, domain.SeatNorth)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}

	state.Game = game
	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)

	logger.Info("StartGame: Board %d started, dealer %s.", game.Board, game.Dealer)
}

func (mh *matchHandler) handleRequestNewGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := seatOf(state.Seats[:], senderID)

	if senderSeat != state.OwnerSeat {
		logger.Warn("RequestNewGame: User %s is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}

	game, events, err := state.App.NewDeal(state.Game)
	if err != nil {
		logger.Warn("RequestNewGame: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	state.Game = game
	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleMakeBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := seatOf(state.Seats[:], senderID)

	if state.Game == nil {
		logger.Warn("handleMakeBid: Game not started.")
		mh.sendError(state, dispatcher, logger, senderID, 400, app.ErrNoGame.Error())
		return
	}
	if senderSeat < 0 {
		logger.Warn("handleMakeBid: User %s is not seated.", senderID)
		return
	}

	var request wire.MakeBidRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleMakeBid: Failed to unmarshal MakeBidRequest: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid bid payload")
		return
	}
	bid, err := domain.ParseBid(request.Bid)
	if err != nil {
		logger.Warn("handleMakeBid: User %s sent unparseable bid %q: %v", senderID, request.Bid, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	events, err := state.App.MakeBid(state.Game, domain.Seat(senderSeat), bid)
	if err != nil {
		logger.Warn("handleMakeBid: User %s (seat %d) bid %s rejected: %v", senderID, senderSeat, bid.Code(), err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := seatOf(state.Seats[:], senderID)

	if state.Game == nil {
		logger.Warn("handlePlayCard: Game not started.")
		mh.sendError(state, dispatcher, logger, senderID, 400, app.ErrNoGame.Error())
		return
	}
	if senderSeat < 0 {
		logger.Warn("handlePlayCard: User %s is not seated.", senderID)
		return
	}

	var request wire.PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal PlayCardRequest: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid card payload")
		return
	}
	card, err := domain.ParseCard(request.Card)
	if err != nil {
		logger.Warn("handlePlayCard: User %s sent unparseable card %q: %v", senderID, request.Card, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	events, err := state.App.PlayCard(state.Game, domain.Seat(senderSeat), card)
	if err != nil {
		logger.Warn("handlePlayCard: User %s (seat %d) failed to play %s: %v", senderID, senderSeat, card.Code(), err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// dispatchEvents converts and broadcasts the app events, then pushes fresh
// per-seat snapshots so every client converges on the authoritative state.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	phaseChanged := false
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
		if ev.Kind == app.EventGameStarted || ev.Kind == app.EventGameEnded {
			phaseChanged = true
		}
	}
	if phaseChanged {
		mh.updateLabel(state, dispatcher, logger)
	}
	mh.broadcastSnapshots(state, dispatcher, logger)
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload any

	switch ev.Kind {
	case app.EventGameStarted:
		opCode = wire.OpGameStarted
		p := ev.Payload.(app.GameStartedPayload)
		payload = wire.GameStarted{
			Board:   p.Board,
			Dealer:  p.Dealer.String(),
			Version: p.Version,
		}
	case app.EventHandDealt:
		opCode = wire.OpHandDealt
		p := ev.Payload.(app.HandDealtPayload)
		payload = wire.HandDealt{
			Seat:  p.Seat.String(),
			Cards: toCardCodes(p.Hand),
		}
	case app.EventBidMade:
		opCode = wire.OpBidMade
		p := ev.Payload.(app.BidMadePayload)
		payload = wire.BidMade{
			Seat:     p.Seat.String(),
			Bid:      p.Bid.Code(),
			NextTurn: p.NextTurn.String(),
			Version:  p.Version,
		}
	case app.EventCardPlayed:
		opCode = wire.OpCardPlayed
		p := ev.Payload.(app.CardPlayedPayload)
		out := wire.CardPlayed{
			Seat:     p.Seat.String(),
			Card:     p.Card.Code(),
			NextTurn: p.NextTurn.String(),
			Version:  p.Version,
		}
		if p.TrickWinner != nil {
			out.TrickWinner = p.TrickWinner.String()
		}
		payload = out
	case app.EventGameEnded:
		opCode = wire.OpGameCompleted
		p := ev.Payload.(app.GameEndedPayload)
		payload = wire.GameCompleted{
			TricksNS: p.TricksNS,
			TricksEW: p.TricksEW,
			Version:  p.Version,
		}
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.RecipientSeats) > 0 {
		for _, seat := range ev.RecipientSeats {
			uid := state.Seats[seat]
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they
		// are bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// broadcastSnapshots sends each connected seated player its own redacted view
// of the deal.
func (mh *matchHandler) broadcastSnapshots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil {
		return
	}
	for i, userId := range state.Seats {
		if userId == "" || isBotUserId(userId) {
			continue
		}
		presence, ok := state.Presences[userId]
		if !ok {
			continue
		}

		snap := BuildSnapshot(state.Game, domain.Seat(i))
		bytes, err := json.Marshal(snap)
		if err != nil {
			logger.Error("Failed to marshal snapshot for seat %d: %v", i, err)
			continue
		}
		dispatcher.BroadcastMessage(wire.OpSnapshot, bytes, []runtime.Presence{presence}, nil, true)
	}
}

func (mh *matchHandler) broadcastTableState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	table := wire.TableUpdated{Phase: "lobby"}
	if state.Game != nil {
		table.Phase = string(state.Game.Phase)
	}
	if state.OwnerSeat >= 0 {
		table.OwnerSeat = domain.Seat(state.OwnerSeat).String()
	}

	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}

		cardsRemaining := 0
		if state.Game != nil {
			cardsRemaining = len(state.Game.Hands[i])
		}

		table.Seats = append(table.Seats, wire.SeatInfo{
			Seat:           domain.Seat(i).String(),
			UserID:         userId,
			DisplayName:    displayName,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          isBotUserId(userId),
			CardsRemaining: cardsRemaining,
		})
	}

	bytes, err := json.Marshal(table)
	if err != nil {
		logger.Error("Failed to marshal table state: %v", err)
		return
	}
	dispatcher.BroadcastMessage(wire.OpTableUpdated, bytes, nil, nil, true)
}

// sendError sends a GameError to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	payload := wire.GameError{
		Code:    code,
		Message: message,
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal GameError: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(wire.OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Game != nil {
		phase = string(state.Game.Phase)
	}

	label := matchLabel{Open: state.GetOpenSeatsCount(), Phase: phase}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
