package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

// State is the complete ledger state. Posts are indexed by ID. Events holds
// the resident tail of the event log, ordered by Seq; EventBase is the Seq of
// the last event older than the tail. A zero Owner means ownership was
// renounced.
//
// OpenPayouts and OpenCaptures are transfers found unfinished at load time.
// Recover resolves them.
type State struct {
	Posts           []models.Post
	Balances        map[common.Address]models.Amount
	PlatformBalance models.Amount
	Owner           common.Address
	Entitlements    []models.Entitlement
	Events          []models.Event
	EventBase       uint64
	OpenPayouts     []models.Payout
	OpenCaptures    []models.Capture

	userPosts map[common.Address][]uint64
	entitled  map[uint64]map[common.Address]struct{}
}

// NewState returns an empty state owned by owner.
func NewState(owner common.Address) *State {
	s := &State{Owner: owner}
	// an empty state is always consistent
	_ = s.index()
	return s
}

// index checks the exported fields for consistency and rebuilds the derived
// lookups from them.
func (s *State) index() error {
	if s.Balances == nil {
		s.Balances = make(map[common.Address]models.Amount)
	}
	s.userPosts = make(map[common.Address][]uint64)
	s.entitled = make(map[uint64]map[common.Address]struct{})

	for i := range s.Posts {
		p := &s.Posts[i]
		if p.ID != uint64(i) {
			return fmt.Errorf("post %d stored at position %d", p.ID, i)
		}
		p.Exists = true
		s.userPosts[p.Author] = append(s.userPosts[p.Author], p.ID)
	}
	for _, e := range s.Entitlements {
		if e.PostID >= uint64(len(s.Posts)) {
			return fmt.Errorf("entitlement for unknown post %d", e.PostID)
		}
		s.entitle(e.PostID, e.Account)
	}
	for i, e := range s.Events {
		if e.Seq != s.EventBase+uint64(i)+1 {
			return fmt.Errorf("event seq %d at position %d", e.Seq, i)
		}
	}
	return nil
}

func (s *State) nextPostID() uint64 { return uint64(len(s.Posts)) }

func (s *State) nextSeq() uint64 { return s.EventBase + uint64(len(s.Events)) + 1 }

// trim drops the oldest events once more than 2*keep are resident, so the
// copy is amortised over keep appends.
func (s *State) trim(keep int) {
	if keep <= 0 || len(s.Events) <= 2*keep {
		return
	}
	drop := len(s.Events) - keep
	s.Events = slices.Clone(s.Events[drop:])
	s.EventBase += uint64(drop)
}

func (s *State) post(id uint64) (*models.Post, bool) {
	if id >= uint64(len(s.Posts)) {
		return nil, false
	}
	return &s.Posts[id], true
}

func (s *State) isEntitled(id uint64, a common.Address) bool {
	_, ok := s.entitled[id][a]
	return ok
}

func (s *State) entitle(id uint64, a common.Address) {
	set, ok := s.entitled[id]
	if !ok {
		set = make(map[common.Address]struct{})
		s.entitled[id] = set
	}
	set[a] = struct{}{}
}

func (s *State) apply(c *Change) {
	if c.Post != nil {
		s.Posts = append(s.Posts, *c.Post)
		s.userPosts[c.Post.Author] = append(s.userPosts[c.Post.Author], c.Post.ID)
	}
	for a, v := range c.Balances {
		if v == 0 {
			delete(s.Balances, a)
			continue
		}
		s.Balances[a] = v
	}
	if c.PlatformBalance != nil {
		s.PlatformBalance = *c.PlatformBalance
	}
	if c.Owner != nil {
		s.Owner = *c.Owner
	}
	if c.Entitlement != nil {
		s.Entitlements = append(s.Entitlements, *c.Entitlement)
		s.entitle(c.Entitlement.PostID, c.Entitlement.Account)
	}
	s.Events = append(s.Events, c.Events...)
}

func (s *State) clone() *State {
	out := &State{
		Posts:           slices.Clone(s.Posts),
		Balances:        make(map[common.Address]models.Amount, len(s.Balances)),
		PlatformBalance: s.PlatformBalance,
		Owner:           s.Owner,
		Entitlements:    slices.Clone(s.Entitlements),
		Events:          slices.Clone(s.Events),
		EventBase:       s.EventBase,
		OpenPayouts:     slices.Clone(s.OpenPayouts),
		OpenCaptures:    slices.Clone(s.OpenCaptures),
	}
	for a, v := range s.Balances {
		out.Balances[a] = v
	}
	_ = out.index()
	return out
}

// Change is the set of effects one operation applies to State. Balances and
// PlatformBalance hold new absolute values; a non-nil Owner replaces the
// owner (the zero address renounces).
//
// Payout and Capture carry the status a transfer moves to together with the
// other effects. They are persisted by the Journal only; memory keeps no
// record of transfers.
type Change struct {
	Post            *models.Post
	Balances        map[common.Address]models.Amount
	PlatformBalance *models.Amount
	Owner           *common.Address
	Entitlement     *models.Entitlement
	Events          []models.Event
	Payout          *models.Payout
	Capture         *models.Capture

	firstSeq uint64
	at       time.Time
}

func (c *Change) setBalance(a common.Address, v models.Amount) {
	if c.Balances == nil {
		c.Balances = make(map[common.Address]models.Amount)
	}
	c.Balances[a] = v
}

func (c *Change) setPlatformBalance(v models.Amount) {
	c.PlatformBalance = &v
}

func (c *Change) setOwner(a common.Address) {
	c.Owner = &a
}

func (c *Change) emit(e models.Event) {
	e.Seq = c.firstSeq + uint64(len(c.Events))
	e.Timestamp = c.at
	c.Events = append(c.Events, e)
}

// Empty reports whether c carries no effects.
func (c *Change) Empty() bool {
	return c.Post == nil && len(c.Balances) == 0 && c.PlatformBalance == nil &&
		c.Owner == nil && c.Entitlement == nil && len(c.Events) == 0 &&
		c.Payout == nil && c.Capture == nil
}

func add(a, b models.Amount) (models.Amount, error) {
	if a > models.MaxAmount || b > models.MaxAmount-a {
		return 0, ErrBalanceOverflow
	}
	return a + b, nil
}

// split divides price into the platform fee and the creator share.
// fee = floor(price*percent/100), computed without overflowing uint64.
func split(price models.Amount, percent uint64) (fee, creator models.Amount) {
	p := uint64(price)
	f := (p/100)*percent + (p%100)*percent/100
	return models.Amount(f), price - models.Amount(f)
}
