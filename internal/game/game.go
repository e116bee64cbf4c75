// internal/game/game.go
package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/pyramid-live/pyramid/internal/cache"
	"github.com/pyramid-live/pyramid/internal/database"
	"github.com/pyramid-live/pyramid/internal/deck"
	"github.com/pyramid-live/pyramid/internal/models"
)

// OnGameEndFunc can handle a finished game, e.g. tearing the room down after
// the summary broadcast.
type OnGameEndFunc func(roomCode string, summary map[uuid.UUID]int)

// GameEventType is an enum-like type for broadcasting room events.
type GameEventType string

const (
	EventRosterUpdate    GameEventType = "roster_update"      // Public roster after join/leave/disconnect
	EventHostLeft        GameEventType = "host_left"          // Host departed; clients return to idle
	EventGameStart       GameEventType = "game_start"         // Hands dealt, pyramid laid out
	EventRoundStart      GameEventType = "round_start"        // Host revealed a pyramid card
	EventRoundClosed     GameEventType = "round_closed"       // Host closed the round UI
	EventTransactions    GameEventType = "round_transactions" // Full transaction list for the open round
	EventDrinkAssigned   GameEventType = "drink_assigned"     // A transaction reached a terminal result
	EventCardViewExpired GameEventType = "card_view_expired"  // The 15s card-view window elapsed
	EventGameEnd         GameEventType = "game_end"           // Summary of the whole game
	EventPrivateHandCard GameEventType = "private_hand_card"  // Private reveal of one of the viewer's own slots
	EventPrivateSync     GameEventType = "private_sync_state" // Private full state on connect/reconnect
	EventActionRejected  GameEventType = "action_rejected"    // Private rejection of an invalid operation
)

// EventUser identifies a participant within GameEvent payloads.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// GameEvent is the single envelope broadcast to clients.
type GameEvent struct {
	Type        GameEventType          `json:"type"`
	User        *EventUser             `json:"user,omitempty"`
	Round       *Round                 `json:"round,omitempty"`
	Transaction *Transaction           `json:"transaction,omitempty"`
	Card        *models.Card           `json:"card,omitempty"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	State       *ObfRoomState          `json:"state,omitempty"`
}

// DefaultCardViewDuration is how long clients get to view a freshly revealed
// pyramid card. The deadline is a wall-clock timestamp, not a local countdown.
const DefaultCardViewDuration = 15 * time.Second

// PyramidGame holds the entire state for a single room in memory. It is the
// authoritative side: client input is serialized through Mu, and every state
// change is pushed back out through the broadcast callbacks.
type PyramidGame struct {
	ID   uuid.UUID
	Code string

	HostID uuid.UUID

	Players []*models.Player
	Deck    deck.Deck
	Pyramid []PyramidSlot

	// CurrentRound is non-nil exactly while the room is in the RoundOpen
	// state. Closed rounds are archived in Rounds by number for the log view.
	CurrentRound *Round
	Rounds       map[int]*Round
	roundCounter int

	Ledger  *DrinkLedger
	Summary map[uuid.UUID]int // set once at game end

	Started  bool
	GameOver bool

	CardViewDuration time.Duration
	viewTimer        *time.Timer

	actionIndex int
	lastSeen    map[uuid.UUID]time.Time
	Mu          sync.Mutex

	// BroadcastFn is used to send events to all participants. If nil, no
	// broadcast is done.
	BroadcastFn func(ev GameEvent)

	// BroadcastToPlayerFn sends an event to a single participant.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)

	// OnGameEnd is invoked after the summary broadcast.
	OnGameEnd OnGameEndFunc
}

// NewPyramidGame builds an empty room with a freshly shuffled deck.
func NewPyramidGame(code string, hostID uuid.UUID) *PyramidGame {
	id, _ := uuid.NewRandom()
	return &PyramidGame{
		ID:               id,
		Code:             code,
		HostID:           hostID,
		Deck:             deck.New(),
		Rounds:           make(map[int]*Round),
		Ledger:           NewDrinkLedger(),
		CardViewDuration: DefaultCardViewDuration,
		lastSeen:         make(map[uuid.UUID]time.Time),
	}
}

// AddPlayer adds a participant or updates their connection if they already
// exist. New players can only join before the game starts.
func (g *PyramidGame) AddPlayer(p *models.Player) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	for _, pl := range g.Players {
		if pl.ID == p.ID {
			pl.Conn = p.Conn
			pl.Connected = true
			g.lastSeen[p.ID] = time.Now()
			log.Printf("Room %s: player %s (%s) reconnected.", g.Code, pl.Name, pl.ID)
			g.broadcastRoster()
			return nil
		}
	}
	if g.Started {
		return ErrGameStarted
	}
	p.IsHost = p.ID == g.HostID
	g.Players = append(g.Players, p)
	g.lastSeen[p.ID] = time.Now()
	log.Printf("Room %s: player %s (%s) joined.", g.Code, p.Name, p.ID)
	g.logAction(p.ID, "player_join", map[string]interface{}{"name": p.Name})
	g.broadcastRoster()
	return nil
}

// StartGame deals every non-host player a hand and lays out the pyramid.
// Deck exhaustion here is a blocking error surfaced to the host: it means the
// room is misconfigured (too many players for a 52-card deck).
// Assumes lock is held.
func (g *PyramidGame) StartGame(actorID uuid.UUID) error {
	if actorID != g.HostID {
		return ErrNotHost
	}
	if g.GameOver {
		return ErrGameOver
	}
	if g.Started {
		return ErrGameStarted
	}

	d := g.Deck
	for _, p := range g.Players {
		if p.IsHost {
			continue
		}
		hand, rest, err := deck.Deal(d, models.HandSize)
		if err != nil {
			return fmt.Errorf("dealing hand for %s: %w", p.Name, err)
		}
		p.Hand = hand
		p.Seen = make([]bool, len(hand))
		d = rest
	}
	spread, rest, err := deck.Deal(d, PyramidSize)
	if err != nil {
		return fmt.Errorf("dealing pyramid: %w", err)
	}
	g.Pyramid = make([]PyramidSlot, PyramidSize)
	for i, c := range spread {
		g.Pyramid[i] = PyramidSlot{Card: c}
	}
	g.Deck = rest
	g.Started = true

	log.Printf("Room %s: game started with %d players, %d cards undealt.", g.Code, len(g.Players), len(g.Deck))
	g.logAction(actorID, string(EventGameStart), map[string]interface{}{"players": len(g.Players)})
	g.persistInitialRoomState()

	g.fireEvent(GameEvent{
		Type:    EventGameStart,
		Payload: map[string]interface{}{"deck_remaining": len(g.Deck)},
	})
	g.broadcastSyncStateToAll()
	return nil
}

// ViewCard reveals one of a player's own hand slots to them, marking the slot
// as seen. Viewing an already-seen slot is a harmless no-op resend.
// Assumes lock is held.
func (g *PyramidGame) ViewCard(playerID uuid.UUID, slot int) error {
	if !g.Started {
		return ErrGameNotStarted
	}
	p := g.getPlayerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if slot < 0 || slot >= len(p.Hand) {
		return fmt.Errorf("hand slot %d out of range", slot)
	}
	p.Seen[slot] = true
	card := p.Hand[slot]
	g.logAction(playerID, "player_view_card", map[string]interface{}{"slot": slot})
	g.fireEventToPlayer(playerID, GameEvent{
		Type:    EventPrivateHandCard,
		Card:    &card,
		Payload: map[string]interface{}{"slot": slot},
	})
	return nil
}

// RevealPyramidCard transitions Idle -> RoundOpen: the host flips a face-down
// pyramid card, which opens a new round with the card's row as multiplier.
// Assumes lock is held.
func (g *PyramidGame) RevealPyramidCard(actorID uuid.UUID, index int) (*Round, error) {
	if actorID != g.HostID {
		return nil, ErrNotHost
	}
	if g.GameOver {
		return nil, ErrGameOver
	}
	if !g.Started {
		return nil, ErrGameNotStarted
	}
	if index < 0 || index >= len(g.Pyramid) {
		return nil, fmt.Errorf("pyramid index %d out of range", index)
	}
	if g.CurrentRound != nil {
		return nil, ErrRoundInProgress
	}
	if g.Pyramid[index].Shown {
		return nil, ErrAlreadyShown
	}

	g.Pyramid[index].Shown = true
	g.roundCounter++
	round := &Round{
		Number:     g.roundCounter,
		Row:        RowOf(index),
		Card:       g.Pyramid[index].Card,
		RevealedAt: time.Now(),
	}
	g.CurrentRound = round

	log.Printf("Room %s: round %d opened, card %d/%s row %d.", g.Code, round.Number, round.Card.Rank, round.Card.Suit, round.Row)
	g.logAction(actorID, string(EventRoundStart), map[string]interface{}{
		"round": round.Number, "index": index, "row": round.Row,
	})
	g.scheduleViewTimer(round.Number)

	g.fireEvent(GameEvent{
		Type:  EventRoundStart,
		Round: round,
		Payload: map[string]interface{}{
			"pyramid_index":  index,
			"view_ends_at":   round.RevealedAt.Add(g.CardViewDuration).UnixMilli(),
			"view_remaining": g.viewRemaining(time.Now()).Milliseconds(),
		},
	})
	return round, nil
}

// Call appends a pending drink call from one player against another. Multiple
// simultaneous calls on the same target are allowed; clients present them in
// call order. CanWin is snapshotted immediately against the caller's hand.
// Assumes lock is held.
func (g *PyramidGame) Call(fromID, toID uuid.UUID) (*Transaction, error) {
	if g.CurrentRound == nil {
		return nil, ErrNoActiveRound
	}
	if fromID == toID {
		return nil, ErrSelfCall
	}
	from := g.getPlayerByID(fromID)
	to := g.getPlayerByID(toID)
	if from == nil || to == nil || from.IsHost || to.IsHost {
		return nil, ErrUnknownPlayer
	}

	t := &Transaction{
		Num:    len(g.CurrentRound.Transactions) + 1,
		From:   fromID,
		To:     toID,
		CanWin: from.HasRank(g.CurrentRound.Card.Rank),
		Result: ResultPending,
	}
	g.CurrentRound.Transactions = append(g.CurrentRound.Transactions, t)

	g.logAction(fromID, "player_call", map[string]interface{}{
		"round": g.CurrentRound.Number, "trans": t.Num, "to": toID.String(),
	})
	g.broadcastTransactions()
	return t, nil
}

// Decision resolves a pending call from the target's side. Accepting charges
// 1x the round row; disputing marks the transaction bullshit and waits for
// the caller's ChallengeReveal. Only the transaction's target may decide;
// caller identity is enforced at the transport edge.
// Assumes lock is held.
func (g *PyramidGame) Decision(transNum int, accept bool) (*Transaction, error) {
	if g.CurrentRound == nil {
		return nil, ErrNoActiveRound
	}
	t := g.CurrentRound.findTransaction(transNum)
	if t == nil || t.Result != ResultPending {
		return nil, ErrUnknownOrResolvedTransaction
	}

	if !accept {
		t.Result = ResultBullshit
		g.logAction(t.To, "player_bullshit", map[string]interface{}{
			"round": g.CurrentRound.Number, "trans": t.Num,
		})
		g.broadcastTransactions()
		return t, nil
	}

	t.Result = ResultAccepted
	g.applyAndBroadcast(t)
	return t, nil
}

// ChallengeReveal settles a disputed call: the original caller reveals one of
// their own hand cards as proof. A rank match against the round card means
// the call was right and the target drinks double; a mismatch means the
// caller was bluffing and drinks double instead. Only the chosen card's rank
// is compared, and it must actually occupy a slot of the caller's dealt hand.
// Assumes lock is held.
func (g *PyramidGame) ChallengeReveal(transNum int, cardIndex int) (*Transaction, error) {
	if g.CurrentRound == nil {
		return nil, ErrNoActiveRound
	}
	t := g.CurrentRound.findTransaction(transNum)
	if t == nil || t.Result != ResultBullshit {
		return nil, ErrUnknownOrResolvedTransaction
	}
	from := g.getPlayerByID(t.From)
	if from == nil {
		return nil, ErrUnknownPlayer
	}
	slot := from.HandIndexOf(cardIndex)
	if slot < 0 {
		return nil, ErrCardNotInHand
	}

	shown := from.Hand[slot]
	from.Seen[slot] = true // revealed to the whole room, so the owner has seen it too
	if shown.Rank == g.CurrentRound.Card.Rank {
		t.Result = ResultBullshitCorrect
	} else {
		t.Result = ResultBullshitWrong
	}
	g.logAction(t.From, "player_challenge_reveal", map[string]interface{}{
		"round": g.CurrentRound.Number, "trans": t.Num,
		"card": shown.Index, "result": string(t.Result),
	})
	g.applyAndBroadcastWithCard(t, &shown)
	return t, nil
}

// CloseRound transitions RoundOpen -> Idle. The round's transactions are
// cleared from the live state but stay addressable in the history map for the
// log and summary views; unresolved transactions simply remain pending there.
// Assumes lock is held.
func (g *PyramidGame) CloseRound(actorID uuid.UUID) error {
	if actorID != g.HostID {
		return ErrNotHost
	}
	if g.CurrentRound == nil {
		return ErrNoActiveRound
	}
	round := g.CurrentRound
	g.Rounds[round.Number] = round
	g.CurrentRound = nil
	g.stopViewTimer()

	log.Printf("Room %s: round %d closed with %d transaction(s).", g.Code, round.Number, len(round.Transactions))
	g.logAction(actorID, string(EventRoundClosed), map[string]interface{}{"round": round.Number})
	g.fireEvent(GameEvent{
		Type:    EventRoundClosed,
		Payload: map[string]interface{}{"round_number": round.Number},
	})
	return nil
}

// EndGame freezes the ledger into the final summary and broadcasts it.
// Assumes lock is held.
func (g *PyramidGame) EndGame(actorID uuid.UUID) error {
	if actorID != g.HostID {
		return ErrNotHost
	}
	if g.GameOver {
		return ErrGameOver
	}
	if g.CurrentRound != nil {
		if err := g.CloseRound(actorID); err != nil {
			return err
		}
	}
	g.GameOver = true
	g.Summary = g.Ledger.Summary()
	g.stopViewTimer()

	summaryByName := make(map[string]int, len(g.Summary))
	for id, n := range g.Summary {
		summaryByName[g.nameOf(id)] = n
	}
	log.Printf("Room %s: game over, %d player(s) on the summary.", g.Code, len(summaryByName))
	g.logAction(actorID, string(EventGameEnd), map[string]interface{}{"summary": summaryByName})
	go database.InsertGameSummary(g.ID, g.Code, summaryByName)

	g.fireEvent(GameEvent{
		Type:    EventGameEnd,
		Payload: map[string]interface{}{"summary": summaryByName},
	})
	if g.OnGameEnd != nil {
		go g.OnGameEnd(g.Code, g.Summary)
	}
	return nil
}

// applyAndBroadcast charges a freshly terminal transaction to the ledger and
// broadcasts the outcome. Assumes lock is held.
func (g *PyramidGame) applyAndBroadcast(t *Transaction) {
	g.applyAndBroadcastWithCard(t, nil)
}

// applyAndBroadcastWithCard is applyAndBroadcast carrying the revealed proof
// card for challenge outcomes. Assumes lock is held.
func (g *PyramidGame) applyAndBroadcastWithCard(t *Transaction, shown *models.Card) {
	round := g.CurrentRound
	delta, applied := g.Ledger.Apply(round.Number, round.Row, t)
	if applied {
		if p := g.getPlayerByID(delta.Player); p != nil {
			p.Drinks = g.Ledger.Total(delta.Player)
		}
		g.publishDrinkRecord(round, t, delta)
	}

	ev := GameEvent{
		Type:        EventDrinkAssigned,
		User:        &EventUser{ID: delta.Player, Name: g.nameOf(delta.Player)},
		Transaction: t,
		Card:        shown,
		Payload: map[string]interface{}{
			"round_number": round.Number,
			"drinks":       delta.Drinks,
		},
	}
	g.fireEvent(ev)
	g.broadcastTransactions()
}

// broadcastTransactions pushes the full transaction list of the open round.
// Sending the whole list keeps client merges idempotent under at-least-once
// delivery. Assumes lock is held.
func (g *PyramidGame) broadcastTransactions() {
	if g.CurrentRound == nil {
		return
	}
	g.fireEvent(GameEvent{
		Type:  EventTransactions,
		Round: g.CurrentRound,
	})
}

// broadcastRoster notifies everyone of the current participant list.
// Assumes lock is held.
func (g *PyramidGame) broadcastRoster() {
	roster := make([]map[string]interface{}, 0, len(g.Players))
	for _, p := range g.Players {
		roster = append(roster, map[string]interface{}{
			"id":        p.ID.String(),
			"name":      p.Name,
			"is_host":   p.IsHost,
			"connected": p.Connected,
			"drinks":    p.Drinks,
		})
	}
	g.fireEvent(GameEvent{
		Type:    EventRosterUpdate,
		Payload: map[string]interface{}{"players": roster},
	})
}

// HandleAction interprets a participant's command and routes it to the
// matching operation, reporting validation failures privately back to the
// sender. Assumes lock is held by the caller (e.g. the WS handler).
func (g *PyramidGame) HandleAction(playerID uuid.UUID, action models.RoomAction) {
	if g.GameOver {
		g.rejectAction(playerID, action.ActionType, ErrGameOver)
		return
	}
	g.lastSeen[playerID] = time.Now()

	var err error
	switch action.ActionType {
	case "action_start_game":
		err = g.StartGame(playerID)
	case "action_reveal_pyramid":
		idx, ok := intField(action.Payload, "index")
		if !ok {
			err = fmt.Errorf("missing pyramid index")
			break
		}
		_, err = g.RevealPyramidCard(playerID, idx)
	case "action_close_round":
		err = g.CloseRound(playerID)
	case "action_end_game":
		err = g.EndGame(playerID)
	case "action_view_card":
		slot, ok := intField(action.Payload, "slot")
		if !ok {
			err = fmt.Errorf("missing hand slot")
			break
		}
		err = g.ViewCard(playerID, slot)
	case "action_call":
		toStr, _ := action.Payload["to"].(string)
		to, parseErr := uuid.Parse(toStr)
		if parseErr != nil {
			err = fmt.Errorf("missing or invalid call target")
			break
		}
		_, err = g.Call(playerID, to)
	case "action_decision":
		num, ok := intField(action.Payload, "trans_num")
		if !ok {
			err = fmt.Errorf("missing transaction number")
			break
		}
		accept, _ := action.Payload["accept"].(bool)
		var t *Transaction
		t, err = g.Decision(num, accept)
		// Only the target decides; a mismatched sender is a client bug.
		if err == nil && t.To != playerID {
			log.Printf("Room %s: decision on trans %d sent by %s, target was %s.", g.Code, num, playerID, t.To)
		}
	case "action_challenge_reveal":
		num, ok := intField(action.Payload, "trans_num")
		if !ok {
			err = fmt.Errorf("missing transaction number")
			break
		}
		card, ok := intField(action.Payload, "card")
		if !ok {
			err = fmt.Errorf("missing revealed card")
			break
		}
		_, err = g.ChallengeReveal(num, card)
	default:
		err = fmt.Errorf("unknown action type: %s", action.ActionType)
	}

	if err != nil {
		log.Printf("Room %s: action %s from %s rejected: %v", g.Code, action.ActionType, playerID, err)
		g.rejectAction(playerID, action.ActionType, err)
	}
}

// rejectAction reports a failed operation back to its originator only.
// Assumes lock is held.
func (g *PyramidGame) rejectAction(playerID uuid.UUID, actionType string, err error) {
	g.fireEventToPlayer(playerID, GameEvent{
		Type: EventActionRejected,
		Payload: map[string]interface{}{
			"action":  actionType,
			"message": err.Error(),
		},
	})
}

// HandleDisconnect marks a participant as gone. Shared round state is left
// untouched: in-flight transactions stay pending until the round closes. A
// departing host additionally notifies all clients.
func (g *PyramidGame) HandleDisconnect(playerID uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p := g.getPlayerByID(playerID)
	if p == nil || !p.Connected {
		return
	}
	p.Connected = false
	p.Conn = nil
	log.Printf("Room %s: player %s (%s) disconnected.", g.Code, p.Name, p.ID)
	g.logAction(playerID, "player_disconnect", nil)

	if playerID == g.HostID {
		g.fireEvent(GameEvent{Type: EventHostLeft})
	}
	g.broadcastRoster()
}

// HandleReconnect attaches a new connection for a known participant and
// resynchronizes them with a full snapshot, including the recomputed
// card-view deadline.
func (g *PyramidGame) HandleReconnect(playerID uuid.UUID, conn *websocket.Conn) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p := g.getPlayerByID(playerID)
	if p == nil {
		return
	}
	p.Conn = conn
	p.Connected = true
	g.lastSeen[playerID] = time.Now()
	g.sendSyncState(playerID)
	g.broadcastRoster()
}

// sendSyncState sends the obfuscated room snapshot to one participant.
// Assumes lock is held.
func (g *PyramidGame) sendSyncState(playerID uuid.UUID) {
	state := g.GetObfuscatedRoomState(playerID)
	g.fireEventToPlayer(playerID, GameEvent{
		Type:  EventPrivateSync,
		State: &state,
	})
}

// broadcastSyncStateToAll resends per-viewer snapshots to every connected
// participant. Assumes lock is held.
func (g *PyramidGame) broadcastSyncStateToAll() {
	for _, p := range g.Players {
		if p.Connected {
			g.sendSyncState(p.ID)
		}
	}
}

// viewRemaining computes how much of the card-view window is left at now,
// anchored on the reveal timestamp so reconnects recompute correctly.
// Assumes lock is held and CurrentRound is non-nil.
func (g *PyramidGame) viewRemaining(now time.Time) time.Duration {
	elapsed := now.Sub(g.CurrentRound.RevealedAt)
	if elapsed >= g.CardViewDuration {
		return 0
	}
	return g.CardViewDuration - elapsed
}

// scheduleViewTimer arms the card-view expiry broadcast for a round. The
// round number guards against stale timers firing after the round closed.
// Assumes lock is held.
func (g *PyramidGame) scheduleViewTimer(roundNumber int) {
	g.stopViewTimer()
	remaining := g.viewRemaining(time.Now())
	g.viewTimer = time.AfterFunc(remaining, func() {
		g.Mu.Lock()
		defer g.Mu.Unlock()
		if g.GameOver || g.CurrentRound == nil || g.CurrentRound.Number != roundNumber {
			return
		}
		g.fireEvent(GameEvent{
			Type:    EventCardViewExpired,
			Payload: map[string]interface{}{"round_number": roundNumber},
		})
	})
}

// stopViewTimer cancels any armed card-view timer. Assumes lock is held.
func (g *PyramidGame) stopViewTimer() {
	if g.viewTimer != nil {
		g.viewTimer.Stop()
		g.viewTimer = nil
	}
}

// getPlayerByID returns the participant with the given id, or nil.
// Assumes lock is held.
func (g *PyramidGame) getPlayerByID(id uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// persistInitialRoomState saves the dealt deck, hands and pyramid so a
// finished game can be reconstructed. Fire-and-forget; the in-memory room
// stays authoritative. Assumes lock is held.
func (g *PyramidGame) persistInitialRoomState() {
	type initialState struct {
		Deck    deck.Deck                `json:"deck"`
		Pyramid []PyramidSlot            `json:"pyramid"`
		Hands   map[string][]models.Card `json:"hands"`
	}
	snap := initialState{
		Deck:    make(deck.Deck, len(g.Deck)),
		Pyramid: make([]PyramidSlot, len(g.Pyramid)),
		Hands:   make(map[string][]models.Card),
	}
	copy(snap.Deck, g.Deck)
	copy(snap.Pyramid, g.Pyramid)
	for _, p := range g.Players {
		if p.IsHost {
			continue
		}
		hand := make([]models.Card, len(p.Hand))
		copy(hand, p.Hand)
		snap.Hands[p.ID.String()] = hand
	}
	go database.UpsertInitialRoomState(g.ID, g.Code, snap)
}

// logAction queues an action record for the out-of-process history consumer.
// Assumes lock is held.
func (g *PyramidGame) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	record := cache.RoomActionRecord{
		RoomID:      g.ID,
		RoomCode:    g.Code,
		ActionIndex: g.actionIndex,
		ActorID:     actorID,
		ActionType:  actionType,
		Payload:     payload,
		Timestamp:   time.Now().Unix(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishRoomAction(ctx, record); err != nil {
			log.Printf("Room %s: failed to publish action record: %v", record.RoomCode, err)
		}
	}()
}

// publishDrinkRecord queues a resolved drink charge for the tally consumer.
// Assumes lock is held.
func (g *PyramidGame) publishDrinkRecord(round *Round, t *Transaction, delta LedgerDelta) {
	record := cache.DrinkRecord{
		RoomCode:    g.Code,
		RoundNumber: round.Number,
		TransNum:    t.Num,
		FromPlayer:  t.From,
		ToPlayer:    t.To,
		Result:      string(t.Result),
		Drinks:      delta.Drinks,
		ChargedTo:   delta.Player,
		Timestamp:   time.Now().Unix(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishDrinkRecord(ctx, record); err != nil {
			log.Printf("Room %s: failed to publish drink record: %v", record.RoomCode, err)
		}
	}()
}

// fireEvent broadcasts an event to all connected participants.
// Assumes lock is held.
func (g *PyramidGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// fireEventToPlayer sends an event only to a specific participant.
// Assumes lock is held.
func (g *PyramidGame) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if g.BroadcastToPlayerFn != nil {
		g.BroadcastToPlayerFn(playerID, ev)
	}
}

// intField extracts an integer from a decoded JSON payload, tolerating the
// float64 representation JSON numbers arrive as.
func intField(payload map[string]interface{}, key string) (int, bool) {
	switch v := payload[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}
