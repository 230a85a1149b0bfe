package room

import (
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nyaru01/Skyjo-V2-sub000/internal/bot"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/config"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/game"
)

var botNames = []string{"Otto", "Ruth", "Milo", "Ida", "Nils", "Greta", "Bruno", "Elsa"}

// Manager owns every room session. All mutations of a session happen
// under its mutex, so actions for one room are applied strictly in the
// order they arrive while unrelated rooms never block each other.
type Manager struct {
	store Store
	cfg   *config.Config
	hub   Broadcaster
}

func NewManager(s Store, cfg *config.Config) *Manager {
	return &Manager{store: s, cfg: cfg}
}

// SetBroadcaster wires the hub in after construction; the hub needs the
// manager first.
func (m *Manager) SetBroadcaster(b Broadcaster) {
	m.hub = b
}

func (m *Manager) broadcast(roomCode, event string, data interface{}) {
	if m.hub != nil {
		m.hub.Broadcast(roomCode, event, data)
	}
}

// CreateRoom opens a room with the given player as host. Registration
// is atomic, so the rare code collision just rolls a new code.
func (m *Manager) CreateRoom(playerName, avatar string, public bool) (*Session, Seat) {
	host := Seat{ID: uuid.NewString(), Name: playerName, Avatar: avatar, IsHost: true}
	for {
		r := &Session{
			Code:             randCode(m.cfg.RoomCodeLen),
			Players:          []Seat{host},
			CumulativeScores: map[string]int{},
			Public:           public,
			CreatedAt:        time.Now(),
		}
		if m.store.SaveRoomIfAbsent(r) {
			return r, host
		}
	}
}

// JoinRoom seats a player. A non-empty playerID that is already seated
// makes the join an idempotent no-op returning the existing seat.
func (m *Manager) JoinRoom(code, playerID, playerName, avatar string) (*Session, Seat, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, Seat{}, ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != "" {
		if seat := r.seat(playerID); seat != nil {
			// A returning player takes their seat back from the bot
			// that has been covering it.
			if seat.IsBot && !strings.HasPrefix(seat.ID, "bot-") {
				seat.IsBot = false
				m.store.SaveRoom(r)
				m.broadcast(code, EventRoomUpdated, rosterPayload(r))
			}
			return r, *seat, nil
		}
	}
	if r.GameStarted {
		return nil, Seat{}, ErrGameStarted
	}
	if len(r.Players) >= m.cfg.MaxPlayers {
		return nil, Seat{}, ErrRoomFull
	}
	seat := Seat{ID: uuid.NewString(), Name: playerName, Avatar: avatar}
	r.Players = append(r.Players, seat)
	m.store.SaveRoom(r)
	m.broadcast(code, EventRoomUpdated, rosterPayload(r))
	return r, seat, nil
}

// AddBot seats a computer player.
func (m *Manager) AddBot(code string) (*Session, Seat, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, Seat{}, ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GameStarted {
		return nil, Seat{}, ErrGameStarted
	}
	if len(r.Players) >= m.cfg.MaxPlayers {
		return nil, Seat{}, ErrRoomFull
	}
	seat := Seat{
		ID:    "bot-" + uuid.NewString(),
		Name:  botNames[len(r.Players)%len(botNames)],
		IsBot: true,
	}
	r.Players = append(r.Players, seat)
	m.store.SaveRoom(r)
	m.broadcast(code, EventRoomUpdated, rosterPayload(r))
	return r, seat, nil
}

// StartGame deals the first round for the current roster. Host only.
func (m *Manager) StartGame(code, playerID string) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GameStarted {
		return ErrGameStarted
	}
	seat := r.seat(playerID)
	if seat == nil {
		return ErrNotSeated
	}
	if !seat.IsHost {
		return ErrNotHost
	}
	if len(r.Players) < game.MinPlayers {
		return ErrNotEnoughPlayers
	}

	st, err := game.NewGame(seatInfos(r), 1, nil)
	if err != nil {
		return err
	}
	r.Game = st
	r.GameStarted = true
	r.GameOver = false
	r.WinnerID = ""
	r.RoundNumber = 1
	r.roundScored = false
	// Keep existing totals so a host restart mid-match does not wipe scores.
	for i := range r.Players {
		if _, ok := r.CumulativeScores[r.Players[i].ID]; !ok {
			r.CumulativeScores[r.Players[i].ID] = 0
		}
	}
	m.store.SaveRoom(r)
	m.broadcast(code, EventGameStarted, gin.H{
		"gameState":        st,
		"cumulativeScores": r.CumulativeScores,
		"roundNumber":      r.RoundNumber,
	})
	m.scheduleBots(r)
	return nil
}

// ApplyAction validates and applies one game action. During the initial
// reveal any seated player may act on their own cards; afterwards only
// the current player's actions get through. A rule violation rejects the
// action without touching the committed state.
func (m *Manager) ApplyAction(code, playerID string, act Action) (*game.GameState, *LastAction, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.GameStarted || r.Game == nil || r.GameOver {
		return nil, nil, ErrGameNotStarted
	}
	st := r.Game
	idx := playerIndex(st, playerID)
	if idx < 0 {
		return nil, nil, ErrNotSeated
	}
	if st.Phase != game.PhaseInitialReveal && st.Players[st.CurrentPlayerIndex].ID != playerID {
		return nil, nil, ErrNotYourTurn
	}

	last := &LastAction{Type: act.Type, PlayerID: playerID, CardIndex: act.CardIndex}
	var next *game.GameState
	var err error
	switch act.Type {
	case ActionRevealInitial:
		if len(act.CardIndices) != 2 {
			return nil, nil, &game.RuleViolation{Reason: "reveal_initial needs two card indices"}
		}
		next, err = game.RevealInitialCards(st, idx, [2]int{act.CardIndices[0], act.CardIndices[1]})
	case ActionDrawPile:
		next, err = game.DrawFromPile(st)
	case ActionDrawDiscard:
		if next, err = game.DrawFromDiscard(st); err == nil {
			last.Card = next.DrawnCard
		}
	case ActionReplaceCard:
		if next, err = game.ReplaceCard(st, act.CardIndex); err == nil {
			last.Card = discardTop(next)
		}
	case ActionDiscardAndReveal:
		if next, err = game.DiscardAndReveal(st, act.CardIndex); err == nil {
			last.Card = discardTop(next)
		}
	case ActionDiscardDrawn:
		if next, err = game.DiscardDrawn(st); err == nil {
			last.Card = discardTop(next)
		}
	case ActionRevealHidden:
		next, err = game.RevealHiddenCard(st, act.CardIndex)
	case ActionUndoDrawDiscard:
		next, err = game.UndoDrawDiscard(st)
	default:
		return nil, nil, ErrUnknownAction
	}
	if err != nil {
		return nil, nil, err
	}

	// Some actions complete the turn; the discard-drawn shortcut for a
	// player with nothing left to flip does too.
	switch act.Type {
	case ActionReplaceCard, ActionDiscardAndReveal, ActionRevealHidden:
		next, err = game.EndTurn(next)
	case ActionDiscardDrawn:
		if next.TurnPhase == game.TurnDraw {
			next, err = game.EndTurn(next)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	r.Game = next
	m.store.SaveRoom(r)
	if next.Phase == game.PhaseFinished {
		m.settleRound(r)
	}
	m.broadcast(code, EventGameUpdate, gin.H{
		"gameState":   next,
		"lastAction":  last,
		"roundNumber": r.RoundNumber,
	})
	m.scheduleBots(r)
	return next, last, nil
}

// Ready records a player's next-round signal. When every seat is ready
// the next round is dealt immediately; otherwise the grace timer armed
// at round end will force it.
func (m *Manager) Ready(code, playerID string) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.GameStarted || r.Game == nil || r.GameOver {
		return ErrGameNotStarted
	}
	if r.Game.Phase != game.PhaseFinished {
		return ErrRoundNotFinished
	}
	seat := r.seat(playerID)
	if seat == nil {
		return ErrNotSeated
	}
	if seat.Ready {
		return ErrAlreadyReady
	}
	seat.Ready = true
	m.store.SaveRoom(r)
	m.broadcast(code, EventRoomUpdated, rosterPayload(r))
	if r.allReady() {
		m.startNextRound(r)
	}
	return nil
}

// HandleDisconnect repairs the room around a departed player: in a
// running game with seats to spare their seat stays and plays on as a
// bot so the round cannot stall on an empty turn; otherwise the seat is
// removed, cancelling the game below two seats. Host migrates to the
// next human in stable order; a room with no humans left is torn down.
func (m *Manager) HandleDisconnect(code, playerID string) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.Players {
		if r.Players[i].ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	wasHost := r.Players[idx].IsHost

	humans := 0
	for i := range r.Players {
		if i != idx && !r.Players[i].IsBot {
			humans++
		}
	}
	if humans == 0 {
		r.stopReadyTimer()
		m.broadcast(code, EventRoomCancelled, gin.H{"reason": "room closed"})
		m.store.DeleteRoom(code)
		return
	}

	if r.GameStarted && r.Game != nil && len(r.Players) > game.MinPlayers {
		r.Players[idx].IsHost = false
		r.Players[idx].IsBot = true
		if r.Game.Phase == game.PhaseFinished {
			r.Players[idx].Ready = true
		}
	} else {
		r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
		if r.GameStarted && len(r.Players) < game.MinPlayers {
			r.GameStarted = false
			r.Game = nil
			r.roundScored = false
			r.stopReadyTimer()
			m.broadcast(code, EventRoomCancelled, gin.H{"reason": "not enough players to continue"})
		}
	}

	if wasHost {
		for i := range r.Players {
			if !r.Players[i].IsBot {
				r.Players[i].IsHost = true
				break
			}
		}
	}
	m.store.SaveRoom(r)
	m.broadcast(code, EventRoomUpdated, rosterPayload(r))

	if r.GameStarted && r.Game != nil {
		if r.Game.Phase == game.PhaseFinished {
			if r.allReady() {
				m.startNextRound(r)
			}
		} else {
			m.scheduleBots(r)
		}
	}
}

// Get returns the session for a room code.
func (m *Manager) Get(code string) (*Session, bool) {
	return m.store.GetRoom(code)
}

// Snapshot returns a copy of the session that is safe to marshal while
// the room keeps running.
func (m *Manager) Snapshot(code string) (*Session, bool) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(), true
}

// PublicRooms lists open public rooms for the lobby, newest first.
func (m *Manager) PublicRooms() []Summary {
	rooms := m.store.ListRooms()
	type entry struct {
		summary Summary
		created time.Time
	}
	var entries []entry
	for _, r := range rooms {
		r.mu.Lock()
		if r.Public && !r.GameOver {
			entries = append(entries, entry{
				summary: Summary{
					Code:       r.Code,
					HostName:   r.hostName(),
					Seats:      len(r.Players),
					MaxPlayers: m.cfg.MaxPlayers,
					Started:    r.GameStarted,
				},
				created: r.CreatedAt,
			})
		}
		r.mu.Unlock()
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].created.After(entries[j].created) })
	out := make([]Summary, len(entries))
	for i, e := range entries {
		out[i] = e.summary
	}
	return out
}

// BotWeights returns the effective bot tuning for a room.
func (m *Manager) BotWeights(code string) (config.BotWeights, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return config.BotWeights{}, ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return m.botWeights(r), nil
}

// SetBotWeights overrides the bot tuning for one room.
func (m *Manager) SetBotWeights(code string, w config.BotWeights) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BotWeights = &w
	m.store.SaveRoom(r)
	return nil
}

// settleRound folds the finished round into the cumulative totals,
// exactly once per round, and either ends the match at the target score
// or arms the ready grace timer. Caller holds the session lock.
func (m *Manager) settleRound(r *Session) {
	if r.roundScored {
		return
	}
	r.roundScored = true

	rows := game.FinalScores(r.Game)
	for _, row := range rows {
		r.CumulativeScores[row.PlayerID] += row.FinalScore
	}
	for i := range r.Players {
		if r.Players[i].IsBot {
			r.Players[i].Ready = true
		}
	}
	m.broadcast(r.Code, EventRoundFinished, gin.H{
		"scores":           rows,
		"cumulativeScores": r.CumulativeScores,
		"roundNumber":      r.RoundNumber,
	})

	over := false
	for _, total := range r.CumulativeScores {
		if total >= m.cfg.TargetScore {
			over = true
			break
		}
	}
	if over {
		r.GameOver = true
		// Lowest running total wins; ties go to the earliest seat.
		winner := ""
		for i := range r.Players {
			id := r.Players[i].ID
			if winner == "" || r.CumulativeScores[id] < r.CumulativeScores[winner] {
				winner = id
			}
		}
		r.WinnerID = winner
		m.store.SaveRoom(r)
		m.broadcast(r.Code, EventGameOver, gin.H{
			"cumulativeScores": r.CumulativeScores,
			"winner":           winner,
		})
		return
	}

	code := r.Code
	r.readyTimer = time.AfterFunc(m.cfg.ReadyTimeout, func() {
		m.forceNextRound(code)
	})
	m.store.SaveRoom(r)
}

// forceNextRound advances past the ready barrier when the grace timer
// fires before everyone has signalled.
func (m *Manager) forceNextRound(code string) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.GameStarted || r.GameOver || r.Game == nil || r.Game.Phase != game.PhaseFinished {
		return
	}
	log.Printf("room %s: ready grace period expired, dealing next round", code)
	m.startNextRound(r)
}

// startNextRound deals the following round for the same seats. Caller
// holds the session lock.
func (m *Manager) startNextRound(r *Session) {
	r.stopReadyTimer()
	for i := range r.Players {
		r.Players[i].Ready = false
	}
	st, err := game.NewGame(seatInfos(r), r.RoundNumber+1, nil)
	if err != nil {
		log.Printf("room %s: next round deal failed: %v", r.Code, err)
		return
	}
	r.RoundNumber++
	r.Game = st
	r.roundScored = false
	m.store.SaveRoom(r)
	m.broadcast(r.Code, EventGameStarted, gin.H{
		"gameState":        st,
		"cumulativeScores": r.CumulativeScores,
		"roundNumber":      r.RoundNumber,
	})
	m.scheduleBots(r)
}

// scheduleBots queues the next bot step(s) for the current state. Caller
// holds the session lock; the steps themselves run later and re-enter
// through ApplyAction like any client.
func (m *Manager) scheduleBots(r *Session) {
	if !r.GameStarted || r.Game == nil || r.GameOver {
		return
	}
	st := r.Game
	switch st.Phase {
	case game.PhaseInitialReveal:
		for i := range st.Players {
			seat := r.seat(st.Players[i].ID)
			if seat != nil && seat.IsBot && st.Players[i].RevealedCount() < game.InitialReveals {
				m.scheduleBotStep(r.Code, st.Players[i].ID)
			}
		}
	case game.PhasePlaying, game.PhaseFinalRound:
		cur := st.CurrentPlayer()
		if seat := r.seat(cur.ID); seat != nil && seat.IsBot {
			m.scheduleBotStep(r.Code, cur.ID)
		}
	}
}

func (m *Manager) scheduleBotStep(code, playerID string) {
	time.AfterFunc(m.cfg.BotDelay, func() {
		m.botStep(code, playerID)
	})
}

func (m *Manager) botStep(code, playerID string) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return
	}
	r.mu.Lock()
	if !r.GameStarted || r.Game == nil || r.GameOver {
		r.mu.Unlock()
		return
	}
	idx := playerIndex(r.Game, playerID)
	if idx < 0 {
		r.mu.Unlock()
		return
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	step, ok := bot.NextStep(r.Game, idx, m.botWeights(r), rng)
	r.mu.Unlock()
	if !ok {
		return
	}

	act := Action{Type: ActionType(step.Kind), CardIndex: step.CardIndex}
	if step.Kind == bot.RevealInitial {
		act.CardIndices = []int{step.CardIndices[0], step.CardIndices[1]}
	}
	// A stale step can lose the race against another commit; the engine
	// rejects it and the next schedule picks up from the fresh state.
	if _, _, err := m.ApplyAction(code, playerID, act); err != nil && !game.IsRuleViolation(err) {
		log.Printf("room %s: bot %s action %s rejected: %v", code, playerID, act.Type, err)
	}
}

func (m *Manager) botWeights(r *Session) config.BotWeights {
	if r.BotWeights != nil {
		return *r.BotWeights
	}
	return m.cfg.DefaultBotWeights
}

func seatInfos(r *Session) []game.PlayerInfo {
	infos := make([]game.PlayerInfo, len(r.Players))
	for i, s := range r.Players {
		infos[i] = game.PlayerInfo{ID: s.ID, Name: s.Name}
	}
	return infos
}

func playerIndex(st *game.GameState, playerID string) int {
	for i := range st.Players {
		if st.Players[i].ID == playerID {
			return i
		}
	}
	return -1
}

func discardTop(st *game.GameState) *game.Card {
	if len(st.DiscardPile) == 0 {
		return nil
	}
	top := st.DiscardPile[len(st.DiscardPile)-1]
	return &top
}

func rosterPayload(r *Session) gin.H {
	return gin.H{
		"players":     r.Players,
		"gameStarted": r.GameStarted,
		"roundNumber": r.RoundNumber,
	}
}
