// internal/game/game_test.go
package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pyramid-live/pyramid/internal/deck"
	"github.com/pyramid-live/pyramid/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBroadcaster collects events instead of sending them over WS.
type mockBroadcaster struct {
	mu           sync.Mutex
	allEvents    []GameEvent               // Events sent to everyone
	playerEvents map[uuid.UUID][]GameEvent // Events sent to specific players
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{
		playerEvents: make(map[uuid.UUID][]GameEvent),
	}
}

func (mb *mockBroadcaster) broadcastFn(ev GameEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = append(mb.allEvents, ev)
}

func (mb *mockBroadcaster) broadcastToPlayerFn(playerID uuid.UUID, ev GameEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.playerEvents[playerID] = append(mb.playerEvents[playerID], ev)
}

func (mb *mockBroadcaster) clear() {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = []GameEvent{}
	mb.playerEvents = make(map[uuid.UUID][]GameEvent)
}

func (mb *mockBroadcaster) eventsOfType(tp GameEventType) []GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	var out []GameEvent
	for _, ev := range mb.allEvents {
		if ev.Type == tp {
			out = append(out, ev)
		}
	}
	return out
}

func (mb *mockBroadcaster) getLastEvent() *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if len(mb.allEvents) == 0 {
		return nil
	}
	return &mb.allEvents[len(mb.allEvents)-1]
}

func (mb *mockBroadcaster) getLastPlayerEvent(playerID uuid.UUID) *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	events, ok := mb.playerEvents[playerID]
	if !ok || len(events) == 0 {
		return nil
	}
	return &events[len(events)-1]
}

// cardOf builds the card with the given rank taken from one of the four suit
// blocks (0..3), so tests can lay out non-colliding hands deterministically.
func cardOf(rank, suit int) models.Card {
	return models.NewCard(suit*13 + rank - 1)
}

// giveHand overwrites a player's dealt hand with specific ranks from one suit.
func giveHand(p *models.Player, suit int, ranks ...int) {
	p.Hand = make([]models.Card, len(ranks))
	p.Seen = make([]bool, len(ranks))
	for i, r := range ranks {
		p.Hand[i] = cardOf(r, suit)
	}
}

// setupTestRoom initializes a started room "abcd" with a host plus numPlayers
// guests, wired to a mock broadcaster.
func setupTestRoom(t *testing.T, numPlayers int) (*PyramidGame, []*models.Player, *mockBroadcaster) {
	t.Helper()
	hostID := uuid.New()
	g := NewPyramidGame("abcd", hostID)
	mb := newMockBroadcaster()
	g.BroadcastFn = mb.broadcastFn
	g.BroadcastToPlayerFn = mb.broadcastToPlayerFn

	require.NoError(t, g.AddPlayer(&models.Player{ID: hostID, Name: "host", Connected: true}))

	names := []string{"alice", "bob", "carol", "dave", "erin", "frank"}
	players := make([]*models.Player, numPlayers)
	for i := 0; i < numPlayers; i++ {
		p := &models.Player{ID: uuid.New(), Name: names[i%len(names)], Connected: true}
		players[i] = p
		require.NoError(t, g.AddPlayer(p))
	}

	require.NoError(t, g.StartGame(hostID))
	require.True(t, g.Started, "Game should be marked as started")

	mb.clear() // Clear events from setup phase
	return g, players, mb
}

// openRound pins a known rank onto a pyramid slot and reveals it.
func openRound(t *testing.T, g *PyramidGame, index, rank int) *Round {
	t.Helper()
	g.Pyramid[index].Card = cardOf(rank, 0)
	round, err := g.RevealPyramidCard(g.HostID, index)
	require.NoError(t, err)
	return round
}

func TestStartGameDealsHandsAndPyramid(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)

	seen := make(map[int]bool)
	track := func(c models.Card) {
		assert.False(t, seen[c.Index], "card %d dealt twice", c.Index)
		seen[c.Index] = true
	}

	for _, p := range players {
		require.Len(t, p.Hand, models.HandSize)
		require.Len(t, p.Seen, models.HandSize)
		for i, c := range p.Hand {
			assert.False(t, p.Seen[i], "freshly dealt cards start unseen")
			track(c)
		}
	}
	require.Len(t, g.Pyramid, PyramidSize)
	for _, slot := range g.Pyramid {
		assert.False(t, slot.Shown)
		track(slot.Card)
	}
	for _, c := range g.Deck {
		track(c)
	}
	assert.Len(t, seen, 52, "hands, pyramid and undealt deck partition the full deck")

	host := g.getPlayerByID(g.HostID)
	require.NotNil(t, host)
	assert.True(t, host.IsHost)
	assert.Empty(t, host.Hand, "the host is never dealt a hand")
}

func TestStartGameValidation(t *testing.T) {
	hostID := uuid.New()
	g := NewPyramidGame("abcd", hostID)
	require.NoError(t, g.AddPlayer(&models.Player{ID: hostID, Name: "host", Connected: true}))
	guest := &models.Player{ID: uuid.New(), Name: "alice", Connected: true}
	require.NoError(t, g.AddPlayer(guest))

	assert.ErrorIs(t, g.StartGame(guest.ID), ErrNotHost)

	_, err := g.RevealPyramidCard(hostID, 0)
	assert.ErrorIs(t, err, ErrGameNotStarted)

	require.NoError(t, g.StartGame(hostID))
	assert.ErrorIs(t, g.StartGame(hostID), ErrGameStarted)
}

func TestStartGameDeckExhaustion(t *testing.T) {
	// 10 hands of 4 leave only 12 cards, which cannot fill a 15-slot pyramid.
	hostID := uuid.New()
	g := NewPyramidGame("abcd", hostID)
	require.NoError(t, g.AddPlayer(&models.Player{ID: hostID, Name: "host", Connected: true}))
	for i := 0; i < 10; i++ {
		require.NoError(t, g.AddPlayer(&models.Player{ID: uuid.New(), Name: "p", Connected: true}))
	}

	err := g.StartGame(hostID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, deck.ErrInsufficientCards))
	assert.False(t, g.Started)
}

func TestJoinAfterStartRejected(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)

	err := g.AddPlayer(&models.Player{ID: uuid.New(), Name: "late", Connected: true})
	assert.ErrorIs(t, err, ErrGameStarted)

	// An existing player re-joining is a reconnect, not a new seat.
	require.NoError(t, g.AddPlayer(&models.Player{ID: players[0].ID, Name: "alice", Connected: true}))
	assert.Len(t, g.Players, 3) // host + 2
}

func TestRevealOpensRound(t *testing.T) {
	g, _, mb := setupTestRoom(t, 2)

	round := openRound(t, g, 9, 7)
	assert.Equal(t, 1, round.Number)
	assert.Equal(t, 3, round.Row, "slot 9 sits in row 3")
	assert.Equal(t, 7, round.Card.Rank)
	assert.False(t, round.RevealedAt.IsZero())
	assert.True(t, g.Pyramid[9].Shown)
	require.Same(t, round, g.CurrentRound)

	starts := mb.eventsOfType(EventRoundStart)
	require.Len(t, starts, 1)
	assert.Equal(t, 9, starts[0].Payload["pyramid_index"])

	// A second reveal while the round is open is rejected.
	_, err := g.RevealPyramidCard(g.HostID, 10)
	assert.ErrorIs(t, err, ErrRoundInProgress)

	require.NoError(t, g.CloseRound(g.HostID))

	// The slot stays face up forever.
	_, err = g.RevealPyramidCard(g.HostID, 9)
	assert.ErrorIs(t, err, ErrAlreadyShown)
}

func TestRevealRequiresHost(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)
	_, err := g.RevealPyramidCard(players[0].ID, 0)
	assert.ErrorIs(t, err, ErrNotHost)

	_, err = g.RevealPyramidCard(g.HostID, 15)
	assert.Error(t, err)
}

func TestRoundNumbersNeverReused(t *testing.T) {
	g, _, _ := setupTestRoom(t, 2)

	for i, want := range []int{1, 2, 3} {
		round := openRound(t, g, i, 5)
		assert.Equal(t, want, round.Number)
		require.NoError(t, g.CloseRound(g.HostID))
	}
	assert.NotNil(t, g.Rounds[1])
	assert.NotNil(t, g.Rounds[2])
	assert.NotNil(t, g.Rounds[3])
}

func TestCallSnapshotsCanWin(t *testing.T) {
	g, players, mb := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]
	giveHand(alice, 1, 7, 2, 9, 12)
	giveHand(bob, 2, 3, 4, 5, 6)

	openRound(t, g, 9, 7)
	mb.clear()

	t1, err := g.Call(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, t1.Num)
	assert.True(t, t1.CanWin, "alice holds a 7 against a rank-7 round card")
	assert.Equal(t, ResultPending, t1.Result)

	t2, err := g.Call(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, t2.Num)
	assert.False(t, t2.CanWin)

	assert.Same(t, t1, g.CurrentRound.FirstPending(), "decisions run in call order")

	lists := mb.eventsOfType(EventTransactions)
	require.NotEmpty(t, lists)
	assert.Len(t, lists[len(lists)-1].Round.Transactions, 2)
}

func TestCallValidation(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]

	_, err := g.Call(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNoActiveRound)

	openRound(t, g, 0, 4)

	_, err = g.Call(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfCall)

	_, err = g.Call(alice.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	// The host pours but never drinks.
	_, err = g.Call(alice.ID, g.HostID)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestDecisionAcceptChargesRow(t *testing.T) {
	g, players, mb := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]

	openRound(t, g, 9, 7) // row 3
	_, err := g.Call(alice.ID, bob.ID)
	require.NoError(t, err)
	mb.clear()

	tr, err := g.Decision(1, true)
	require.NoError(t, err)
	assert.Equal(t, ResultAccepted, tr.Result)
	assert.Equal(t, 3, bob.Drinks)
	assert.Equal(t, 3, g.Ledger.Total(bob.ID))
	assert.Zero(t, alice.Drinks)

	drinks := mb.eventsOfType(EventDrinkAssigned)
	require.Len(t, drinks, 1)
	assert.Equal(t, bob.ID, drinks[0].User.ID)
	assert.Equal(t, 3, drinks[0].Payload["drinks"])
}

func TestDecisionDisputeStaysOpen(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]

	openRound(t, g, 9, 7)
	_, err := g.Call(alice.ID, bob.ID)
	require.NoError(t, err)

	tr, err := g.Decision(1, false)
	require.NoError(t, err)
	assert.Equal(t, ResultBullshit, tr.Result)
	assert.False(t, tr.Result.Terminal())
	assert.Zero(t, bob.Drinks)
	assert.Zero(t, alice.Drinks)
}

func TestChallengeRevealCorrect(t *testing.T) {
	// Round card rank 7 on row 3. Alice calls Bob, Bob disputes, and Alice
	// proves it with her 7: Bob drinks double the row.
	g, players, mb := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]
	giveHand(alice, 1, 7, 2, 9, 12)

	openRound(t, g, 9, 7)
	_, err := g.Call(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = g.Decision(1, false)
	require.NoError(t, err)
	mb.clear()

	tr, err := g.ChallengeReveal(1, cardOf(7, 1).Index)
	require.NoError(t, err)
	assert.Equal(t, ResultBullshitCorrect, tr.Result)
	assert.Equal(t, 6, bob.Drinks)
	assert.Zero(t, alice.Drinks)
	assert.True(t, alice.Seen[0], "the proof card is face up for everyone, its owner included")

	drinks := mb.eventsOfType(EventDrinkAssigned)
	require.Len(t, drinks, 1)
	require.NotNil(t, drinks[0].Card)
	assert.Equal(t, 7, drinks[0].Card.Rank)
}

func TestChallengeRevealWrong(t *testing.T) {
	// Same dispute, but Alice shows a rank-2 card: she was bluffing and
	// drinks double the row herself.
	g, players, _ := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]
	giveHand(alice, 1, 7, 2, 9, 12)

	openRound(t, g, 9, 7)
	_, err := g.Call(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = g.Decision(1, false)
	require.NoError(t, err)

	tr, err := g.ChallengeReveal(1, cardOf(2, 1).Index)
	require.NoError(t, err)
	assert.Equal(t, ResultBullshitWrong, tr.Result)
	assert.Equal(t, 6, alice.Drinks)
	assert.Zero(t, bob.Drinks)
}

func TestChallengeRevealRequiresHandCard(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]
	giveHand(alice, 1, 7, 2, 9, 12)

	openRound(t, g, 9, 7)
	_, err := g.Call(alice.ID, bob.ID)
	require.NoError(t, err)
	tr, err := g.Decision(1, false)
	require.NoError(t, err)

	_, err = g.ChallengeReveal(1, cardOf(5, 2).Index)
	assert.ErrorIs(t, err, ErrCardNotInHand)
	assert.Equal(t, ResultBullshit, tr.Result, "a rejected reveal leaves the dispute open")
	assert.Zero(t, alice.Drinks)
	assert.Zero(t, bob.Drinks)
}

func TestChallengeRevealRequiresDispute(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]
	giveHand(alice, 1, 7, 2, 9, 12)

	openRound(t, g, 9, 7)
	_, err := g.Call(alice.ID, bob.ID)
	require.NoError(t, err)

	// Still pending: nothing to prove yet.
	_, err = g.ChallengeReveal(1, cardOf(7, 1).Index)
	assert.ErrorIs(t, err, ErrUnknownOrResolvedTransaction)

	_, err = g.Decision(1, true)
	require.NoError(t, err)

	// Already accepted: terminal results never mutate again.
	_, err = g.ChallengeReveal(1, cardOf(7, 1).Index)
	assert.ErrorIs(t, err, ErrUnknownOrResolvedTransaction)
}

func TestDuplicateResolutionRejected(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]

	openRound(t, g, 12, 9) // row 4
	_, err := g.Call(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = g.Decision(1, true)
	require.NoError(t, err)
	require.Equal(t, 4, g.Ledger.Total(bob.ID))

	_, err = g.Decision(1, true)
	assert.ErrorIs(t, err, ErrUnknownOrResolvedTransaction)
	_, err = g.Decision(1, false)
	assert.ErrorIs(t, err, ErrUnknownOrResolvedTransaction)
	_, err = g.Decision(99, true)
	assert.ErrorIs(t, err, ErrUnknownOrResolvedTransaction)

	assert.Equal(t, 4, g.Ledger.Total(bob.ID), "replays must not double-charge")
	assert.Equal(t, 4, bob.Drinks)
}

func TestCloseRoundArchivesPending(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]

	round := openRound(t, g, 5, 11)
	_, err := g.Call(alice.ID, bob.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, g.CloseRound(alice.ID), ErrNotHost)
	require.NoError(t, g.CloseRound(g.HostID))

	assert.Nil(t, g.CurrentRound)
	archived := g.Rounds[round.Number]
	require.NotNil(t, archived)
	require.Len(t, archived.Transactions, 1)
	assert.Equal(t, ResultPending, archived.Transactions[0].Result, "unresolved calls stay pending in the log")

	assert.ErrorIs(t, g.CloseRound(g.HostID), ErrNoActiveRound)
}

func TestViewCardMarksSeen(t *testing.T) {
	g, players, mb := setupTestRoom(t, 2)
	alice := players[0]

	require.NoError(t, g.ViewCard(alice.ID, 2))
	assert.True(t, alice.Seen[2])

	ev := mb.getLastPlayerEvent(alice.ID)
	require.NotNil(t, ev)
	assert.Equal(t, EventPrivateHandCard, ev.Type)
	require.NotNil(t, ev.Card)
	assert.Equal(t, alice.Hand[2].Index, ev.Card.Index)
	assert.Empty(t, mb.eventsOfType(EventPrivateHandCard), "hand cards are never broadcast")

	assert.Error(t, g.ViewCard(alice.ID, models.HandSize))
	assert.ErrorIs(t, g.ViewCard(uuid.New(), 0), ErrUnknownPlayer)
}

func TestViewDeadlineRecomputedFromRevealTime(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)
	alice := players[0]

	openRound(t, g, 0, 4)

	// Fully elapsed window: a reconnecting client sees zero remaining.
	g.CurrentRound.RevealedAt = time.Now().Add(-20 * time.Second)
	state := g.GetObfuscatedRoomState(alice.ID)
	assert.Zero(t, state.ViewRemainingMS)

	// Mid-window: remaining time is anchored on the reveal timestamp.
	g.CurrentRound.RevealedAt = time.Now().Add(-5 * time.Second)
	state = g.GetObfuscatedRoomState(alice.ID)
	assert.InDelta(t, 10_000, state.ViewRemainingMS, 500)
}

func TestObfuscatedStateHidesCards(t *testing.T) {
	g, players, _ := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]

	require.NoError(t, g.ViewCard(alice.ID, 0))
	require.NoError(t, g.ViewCard(bob.ID, 1))
	openRound(t, g, 9, 7)

	state := g.GetObfuscatedRoomState(alice.ID)
	assert.Equal(t, "abcd", state.RoomCode)

	var aliceView, bobView *ObfPlayer
	for i := range state.Players {
		switch state.Players[i].ID {
		case alice.ID:
			aliceView = &state.Players[i]
		case bob.ID:
			bobView = &state.Players[i]
		}
	}
	require.NotNil(t, aliceView)
	require.NotNil(t, bobView)

	assert.NotNil(t, aliceView.Hand[0].Card, "own seen slot carries the card")
	assert.Nil(t, aliceView.Hand[1].Card, "own unseen slot stays hidden")
	assert.True(t, bobView.Hand[1].Seen)
	assert.Nil(t, bobView.Hand[1].Card, "another player's card is never included")

	assert.True(t, state.Pyramid[9].Shown)
	assert.NotNil(t, state.Pyramid[9].Card)
	assert.Nil(t, state.Pyramid[0].Card, "face-down pyramid cards stay hidden")
}

func TestHostLeftBroadcast(t *testing.T) {
	g, players, mb := setupTestRoom(t, 2)

	g.HandleDisconnect(players[0].ID)
	assert.Empty(t, mb.eventsOfType(EventHostLeft))
	assert.NotEmpty(t, mb.eventsOfType(EventRosterUpdate))

	mb.clear()
	g.HandleDisconnect(g.HostID)
	assert.Len(t, mb.eventsOfType(EventHostLeft), 1)
}

func TestHandleReconnectSendsSnapshot(t *testing.T) {
	g, players, mb := setupTestRoom(t, 2)
	alice := players[0]

	g.HandleDisconnect(alice.ID)
	g.HandleReconnect(alice.ID, nil)

	assert.True(t, alice.Connected)
	ev := mb.getLastPlayerEvent(alice.ID)
	require.NotNil(t, ev)
	assert.Equal(t, EventPrivateSync, ev.Type)
	require.NotNil(t, ev.State)
	assert.Equal(t, "abcd", ev.State.RoomCode)
}

func TestEndGameFreezesSummary(t *testing.T) {
	g, players, mb := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]

	openRound(t, g, 9, 7)
	_, err := g.Call(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = g.Decision(1, true)
	require.NoError(t, err)

	assert.ErrorIs(t, g.EndGame(alice.ID), ErrNotHost)
	require.NoError(t, g.EndGame(g.HostID))

	assert.True(t, g.GameOver)
	assert.Nil(t, g.CurrentRound, "an open round is closed on the way out")
	assert.Equal(t, 3, g.Summary[bob.ID])

	ends := mb.eventsOfType(EventGameEnd)
	require.Len(t, ends, 1)
	summary, ok := ends[0].Payload["summary"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 3, summary["bob"])

	assert.ErrorIs(t, g.EndGame(g.HostID), ErrGameOver)

	// Every further action bounces off the finished game.
	mb.clear()
	g.HandleAction(g.HostID, models.RoomAction{ActionType: "action_reveal_pyramid", Payload: map[string]interface{}{"index": float64(1)}})
	ev := mb.getLastPlayerEvent(g.HostID)
	require.NotNil(t, ev)
	assert.Equal(t, EventActionRejected, ev.Type)
}

func TestHandleActionRouting(t *testing.T) {
	g, players, mb := setupTestRoom(t, 2)
	alice, bob := players[0], players[1]

	// Payload numbers arrive as float64 after JSON decoding.
	g.HandleAction(g.HostID, models.RoomAction{
		ActionType: "action_reveal_pyramid",
		Payload:    map[string]interface{}{"index": float64(9)},
	})
	require.NotNil(t, g.CurrentRound)

	g.HandleAction(alice.ID, models.RoomAction{
		ActionType: "action_call",
		Payload:    map[string]interface{}{"to": bob.ID.String()},
	})
	require.Len(t, g.CurrentRound.Transactions, 1)

	g.HandleAction(bob.ID, models.RoomAction{
		ActionType: "action_decision",
		Payload:    map[string]interface{}{"trans_num": float64(1), "accept": true},
	})
	assert.Equal(t, ResultAccepted, g.CurrentRound.Transactions[0].Result)
	assert.Equal(t, g.CurrentRound.Row, bob.Drinks)

	mb.clear()
	g.HandleAction(alice.ID, models.RoomAction{ActionType: "action_flip_table", Payload: map[string]interface{}{}})
	ev := mb.getLastPlayerEvent(alice.ID)
	require.NotNil(t, ev)
	assert.Equal(t, EventActionRejected, ev.Type)
	assert.Equal(t, "action_flip_table", ev.Payload["action"])
}

func TestHandleActionReportsValidationPrivately(t *testing.T) {
	g, players, mb := setupTestRoom(t, 2)
	alice := players[0]

	// Guest attempts a host-only operation.
	g.HandleAction(alice.ID, models.RoomAction{
		ActionType: "action_reveal_pyramid",
		Payload:    map[string]interface{}{"index": float64(0)},
	})
	ev := mb.getLastPlayerEvent(alice.ID)
	require.NotNil(t, ev)
	assert.Equal(t, EventActionRejected, ev.Type)
	assert.Nil(t, g.CurrentRound)
	assert.Empty(t, mb.eventsOfType(EventActionRejected), "rejections are private, never broadcast")
}
