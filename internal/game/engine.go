package game

import (
	"errors"
	"math/rand"
	"time"
)

var (
	ErrHandNotRunning    = errors.New("no hand in progress")
	ErrHandInProgress    = errors.New("hand already in progress")
	ErrBettingClosed     = errors.New("betting is closed")
	ErrNotEnoughPlayers  = errors.New("need at least two players")
	ErrTooManyPlayers    = errors.New("too many players for one deck")
	ErrMissingPlayerID   = errors.New("missing player id")
	ErrReservedPlayerID  = errors.New("player id belongs to a bot")
	ErrNoWinner          = errors.New("showdown produced no winner")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrMustCallOrRaise   = errors.New("cannot check: must call or raise")
	ErrRaiseTooSmall     = errors.New("raise must exceed current bet")
	ErrInsufficientChips = errors.New("insufficient chips to raise")
	ErrUnknownAction     = errors.New("unknown action")
)

const (
	DefaultStartingChips = 1000
	BotName              = "Bot"
)

type Option func(*Table)

func WithRand(rng *rand.Rand) Option {
	return func(t *Table) { t.rng = rng }
}

func WithEvaluator(e Evaluator) Option {
	return func(t *Table) { t.eval = e }
}

func WithStartingChips(n int) Option {
	return func(t *Table) {
		if n > 0 {
			t.startingChips = n
		}
	}
}

// Table is the authoritative state of one room. It performs no I/O and is
// not safe for concurrent use; the owning room goroutine serializes access.
type Table struct {
	ID       string
	HostID   string
	Players  []*Player
	Board    []Card
	Stage    Stage
	Pot      int
	TableBet int
	Turn     int

	// Hand increments on every start and reset; TurnSeq on every turn assignment.
	Hand    uint64
	TurnSeq uint64

	deck          *Deck
	conns         map[string]string // playerID -> connectionID, humans only
	rng           *rand.Rand
	eval          Evaluator
	startingChips int
}

func NewTable(id string, opts ...Option) *Table {
	t := &Table{
		ID:            id,
		Stage:         StageWaiting,
		conns:         make(map[string]string),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		eval:          PokerEvaluator{},
		startingChips: DefaultStartingChips,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table) Rand() *rand.Rand { return t.rng }

// Join seats a new player or rebinds a known one to connID. A rejoin keeps
// chips, cards and flags and only overwrites the connection and display name.
func (t *Table) Join(playerID, connID, name string) (p *Player, rejoined bool, err error) {
	if playerID == "" {
		return nil, false, ErrMissingPlayerID
	}
	if p, _ = t.lookup(playerID); p != nil {
		if p.IsBot {
			return nil, false, ErrReservedPlayerID
		}
		p.Name = name
		t.bind(playerID, connID)
		return p, true, nil
	}

	p = &Player{ID: playerID, Name: name, Chips: t.startingChips}
	// Late joiners sit out the hand in progress.
	p.Folded = t.Stage != StageWaiting
	t.Players = append(t.Players, p)
	t.bind(playerID, connID)
	if t.HostID == "" {
		t.HostID = playerID
	}
	return p, false, nil
}

// bind points connID at playerID alone; a connection speaks for one player.
func (t *Table) bind(playerID, connID string) {
	for id, c := range t.conns {
		if c == connID && id != playerID {
			delete(t.conns, id)
		}
	}
	t.conns[playerID] = connID
}

// NeedsBot reports whether a bot should be seated: fewer than two humans and no bot yet.
func (t *Table) NeedsBot() bool {
	for _, p := range t.Players {
		if p.IsBot {
			return false
		}
	}
	return t.Humans() < 2
}

func (t *Table) SeatBot(id string) *Player {
	bot := &Player{
		ID:     id,
		Name:   BotName,
		Chips:  t.startingChips,
		IsBot:  true,
		Folded: t.Stage != StageWaiting,
	}
	t.Players = append(t.Players, bot)
	return bot
}

func (t *Table) Humans() int {
	n := 0
	for _, p := range t.Players {
		if !p.IsBot {
			n++
		}
	}
	return n
}

func (t *Table) lookup(playerID string) (*Player, int) {
	for i, p := range t.Players {
		if p.ID == playerID {
			return p, i
		}
	}
	return nil, -1
}

func (t *Table) Player(playerID string) *Player {
	p, _ := t.lookup(playerID)
	return p
}

// PlayerByConn resolves the human currently bound to connID.
func (t *Table) PlayerByConn(connID string) *Player {
	if connID == "" {
		return nil
	}
	for id, c := range t.conns {
		if c == connID {
			return t.Player(id)
		}
	}
	return nil
}

func (t *Table) ConnOf(playerID string) string { return t.conns[playerID] }

// IsHost reports whether connID is the host's current connection.
func (t *Table) IsHost(connID string) bool {
	return connID != "" && t.HostID != "" && t.conns[t.HostID] == connID
}

// Current returns the expected actor. It is nil outside a hand and when the
// seat under the pointer can no longer act, as after everyone went all-in.
func (t *Table) Current() *Player {
	if t.Stage == StageWaiting || t.Turn < 0 || t.Turn >= len(t.Players) {
		return nil
	}
	if p := t.Players[t.Turn]; p.CanAct() {
		return p
	}
	return nil
}

func (t *Table) StartHand() error {
	if t.Stage != StageWaiting {
		return ErrHandInProgress
	}
	if len(t.Players) < 2 {
		return ErrNotEnoughPlayers
	}
	if 2*len(t.Players)+5 > 52 {
		return ErrTooManyPlayers
	}

	t.Hand++
	t.Pot, t.TableBet, t.Turn = 0, 0, 0
	t.Board = nil
	t.deck = NewDeck()
	t.deck.Shuffle(t.rng)
	for _, p := range t.Players {
		hole, err := t.deck.Draw(2)
		if err != nil {
			return err
		}
		p.Hole = hole
		p.Folded = false
		p.AllIn = false
		p.RoundBet = 0
	}
	t.Stage = StagePreFlop
	t.TurnSeq++
	return nil
}

// NextStage moves the hand exactly one stage forward. Betting completeness is
// the host's call and is not checked. A result is returned when the river
// advance resolves the showdown.
//
// Every dealt street opens a fresh betting round: the table bet and each
// seat's round bet drop back to 0, so the minimum raise on a later street is
// anything above 0 rather than above the previous street's bet. Chips already
// committed stay in the pot.
func (t *Table) NextStage() (*GameResult, error) {
	switch t.Stage {
	case StagePreFlop:
		return nil, t.deal(3, StageFlop)
	case StageFlop:
		return nil, t.deal(1, StageTurn)
	case StageTurn:
		return nil, t.deal(1, StageRiver)
	case StageRiver:
		t.Stage = StageShowdown
		return t.showdown()
	case StageShowdown:
		t.Stage = StageWaiting
		t.Board = nil
		return nil, nil
	}
	return nil, ErrHandNotRunning
}

func (t *Table) deal(n int, next Stage) error {
	cards, err := t.deck.Draw(n)
	if err != nil {
		return err
	}
	t.Board = append(t.Board, cards...)
	t.Stage = next
	t.newBettingRound()
	return nil
}

func (t *Table) newBettingRound() {
	t.TableBet = 0
	for _, p := range t.Players {
		p.RoundBet = 0
	}
}

// Reset returns the table to waiting from any stage.
func (t *Table) Reset() {
	t.Hand++
	t.Stage = StageWaiting
	t.Board = nil
	t.Pot, t.TableBet, t.Turn = 0, 0, 0
	t.deck = nil
	for _, p := range t.Players {
		p.Hole = nil
		p.Folded = false
		p.RoundBet = 0
		p.AllIn = false
	}
}

// AdvanceTurn scans one full rotation after the current seat for a player who
// can still act. It reports false, leaving the pointer alone, if there is none.
func (t *Table) AdvanceTurn() (int, bool) {
	n := len(t.Players)
	for step := 1; step <= n; step++ {
		j := (t.Turn + step) % n
		if t.Players[j].CanAct() {
			t.Turn = j
			t.TurnSeq++
			return j, true
		}
	}
	return -1, false
}

type LeaveResult struct {
	Player *Player
	// Empty is set when no humans remain; bot seats are cleared with the last human.
	Empty bool
	// Result is set when the departure ended the hand by fold-out.
	Result *GameResult
	// TurnMoved is set when the expected actor left and the turn passed on.
	TurnMoved bool
}

// Leave removes the player currently bound to connID. A stale connection of a
// player who already rejoined elsewhere matches nobody.
func (t *Table) Leave(connID string) (LeaveResult, bool) {
	p := t.PlayerByConn(connID)
	if p == nil {
		return LeaveResult{}, false
	}
	_, idx := t.lookup(p.ID)
	wasActor := t.inBetting() && idx == t.Turn

	t.Players = append(t.Players[:idx], t.Players[idx+1:]...)
	delete(t.conns, p.ID)
	if idx < t.Turn {
		t.Turn--
	}
	res := LeaveResult{Player: p}

	if t.HostID == p.ID {
		t.HostID = ""
		for _, o := range t.Players {
			if !o.IsBot {
				t.HostID = o.ID
				break
			}
		}
	}
	if t.Humans() == 0 {
		t.Players = nil
		t.Reset()
		res.Empty = true
		return res, true
	}

	if t.inBetting() {
		if r := t.foldOut(); r != nil {
			res.Result = r
			return res, true
		}
		if wasActor {
			n := len(t.Players)
			t.Turn = (idx - 1 + n) % n
			_, res.TurnMoved = t.AdvanceTurn()
		}
	}
	if t.Turn >= len(t.Players) {
		t.Turn = 0
	}
	return res, true
}

func (t *Table) inBetting() bool {
	switch t.Stage {
	case StagePreFlop, StageFlop, StageTurn, StageRiver:
		return true
	}
	return false
}

// foldOut ends the hand when exactly one player has not folded.
func (t *Table) foldOut() *GameResult {
	var last *Player
	for _, p := range t.Players {
		if !p.Folded {
			if last != nil {
				return nil
			}
			last = p
		}
	}
	if last == nil {
		return nil
	}
	res := t.award(last, winByFold)
	t.Stage = StageWaiting
	t.newBettingRound()
	return res
}

func (t *Table) award(p *Player, desc string) *GameResult {
	res := &GameResult{
		WinnerID:    p.ID,
		WinnerName:  p.Name,
		Pot:         t.Pot,
		WinningHand: desc,
	}
	p.Chips += t.Pot
	t.Pot = 0
	return res
}
