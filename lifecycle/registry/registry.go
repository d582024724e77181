package registry

import (
	"fmt"
	"sync"
	"time"
)

// Stage is the lifecycle state of a serial. Stored lowercase, the same
// values end up in the serials table and in API responses.
type Stage string

const (
	StageAvailable Stage = "available"
	StageReserved  Stage = "reserved"
	StageSold      Stage = "sold"
	StageDamaged   Stage = "damaged"
	StageInService Stage = "in_service"
	StageRepaired  Stage = "repaired"
	StageScrapped  Stage = "scrapped"
)

// transitions is the authoritative table of allowed lifecycle moves.
// Anything not listed here is rejected, never coerced.
var transitions = map[Stage][]Stage{
	StageAvailable: {StageReserved, StageDamaged, StageInService},
	StageReserved:  {StageSold, StageAvailable},
	StageSold:      {StageAvailable, StageDamaged, StageInService},
	StageDamaged:   {StageAvailable, StageScrapped},
	StageInService: {StageRepaired},
	StageRepaired:  {StageAvailable, StageSold},
}

// Allowed reports whether from -> to is a legal lifecycle move.
func Allowed(from, to Stage) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Serial is the canonical lifecycle record for one physical unit.
// PrevStage/PrevRef remember where a unit was before it went into
// service, so a repaired unit can be restored to its prior owner.
type Serial struct {
	SerialNo   string
	CategoryID int64
	Stage      Stage
	StageRef   string
	PrevStage  Stage
	PrevRef    string
	CreatedAt  time.Time
}

// Move is one requested stage change inside a batch.
type Move struct {
	SerialNo string
	To       Stage
	OwnerRef string
}

// Store persists registry state. InsertBatch and UpdateBatch must be
// atomic: on error no row may have been written.
type Store interface {
	LoadAll() ([]Serial, error)
	InsertBatch(serials []Serial) error
	UpdateBatch(serials []Serial) error
}

// Registry is the single source of truth for serial stages. All writes
// go through its mutex; reads outside a batch see committed state only.
type Registry struct {
	mu      sync.RWMutex
	serials map[string]*Serial
	store   Store
}

// Open hydrates a registry from the store.
func Open(store Store) (*Registry, error) {
	rows, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load serials: %w", err)
	}

	r := &Registry{
		serials: make(map[string]*Serial, len(rows)),
		store:   store,
	}
	for i := range rows {
		s := rows[i]
		r.serials[s.SerialNo] = &s
	}
	return r, nil
}

// Register adds a single serial in Available stage.
func (r *Registry) Register(serialNo string, categoryID int64) (Serial, error) {
	created, err := r.RegisterBatch([]Serial{{SerialNo: serialNo, CategoryID: categoryID}})
	if err != nil {
		return Serial{}, err
	}
	return created[0], nil
}

// RegisterBatch registers a set of new serials atomically. Every serial
// starts in Available stage; a duplicate anywhere in the batch or the
// registry fails the whole batch.
func (r *Registry) RegisterBatch(serials []Serial) ([]Serial, error) {
	if len(serials) == 0 {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := make([]Serial, 0, len(serials))
	seen := make(map[string]bool, len(serials))

	for _, s := range serials {
		if s.SerialNo == "" {
			return nil, fmt.Errorf("empty serial number in batch")
		}
		if seen[s.SerialNo] {
			return nil, &DuplicateSerialError{SerialNo: s.SerialNo}
		}
		if _, ok := r.serials[s.SerialNo]; ok {
			return nil, &DuplicateSerialError{SerialNo: s.SerialNo}
		}
		seen[s.SerialNo] = true
		created = append(created, Serial{
			SerialNo:   s.SerialNo,
			CategoryID: s.CategoryID,
			Stage:      StageAvailable,
			CreatedAt:  now,
		})
	}

	if err := r.store.InsertBatch(created); err != nil {
		return nil, err
	}
	for i := range created {
		s := created[i]
		r.serials[s.SerialNo] = &s
	}
	return created, nil
}

// Lookup returns a copy of the serial's current state.
func (r *Registry) Lookup(serialNo string) (Serial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.serials[serialNo]
	if !ok {
		return Serial{}, fmt.Errorf("%s: %w", serialNo, ErrNotFound)
	}
	return *s, nil
}

// Transition applies a single stage change.
func (r *Registry) Transition(serialNo string, to Stage, ownerRef string) (Serial, error) {
	updated, err := r.ApplyBatch([]Move{{SerialNo: serialNo, To: to, OwnerRef: ownerRef}})
	if err != nil {
		return Serial{}, err
	}
	return updated[0], nil
}

// ApplyBatch applies a batch of moves as one atomic unit: every move is
// validated against the transition table before anything is written, and
// a store failure leaves the in-memory state untouched. Moves within a
// batch are applied in order, so a batch may step one serial through
// several stages.
func (r *Registry) ApplyBatch(moves []Move) ([]Serial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applyLocked(moves)
}

// View is a read-only window into the registry used while a resolve
// callback runs under the registry lock.
type View struct {
	r *Registry
}

// Serial looks up one serial inside the lock scope.
func (v View) Serial(serialNo string) (Serial, bool) {
	s, ok := v.r.serials[serialNo]
	if !ok {
		return Serial{}, false
	}
	return *s, true
}

// Category returns copies of every serial registered under a category.
func (v View) Category(categoryID int64) []Serial {
	var out []Serial
	for _, s := range v.r.serials {
		if s.CategoryID == categoryID {
			out = append(out, *s)
		}
	}
	return out
}

// ResolveAndApply runs resolve under the registry write lock and commits
// the moves it returns in the same critical section. This closes the gap
// between seeing a serial as available and reserving it: two racing
// callers serialize here, and the loser's resolve sees the winner's
// committed stage.
func (r *Registry) ResolveAndApply(resolve func(View) ([]Move, error)) ([]Serial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	moves, err := resolve(View{r: r})
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, nil
	}
	return r.applyLocked(moves)
}

func (r *Registry) applyLocked(moves []Move) ([]Serial, error) {
	if len(moves) == 0 {
		return nil, nil
	}

	// Stage all moves against copies first. Nothing live changes until
	// the store write succeeds.
	staged := make(map[string]*Serial, len(moves))
	order := make([]string, 0, len(moves))

	for _, m := range moves {
		cur := staged[m.SerialNo]
		if cur == nil {
			live, ok := r.serials[m.SerialNo]
			if !ok {
				return nil, fmt.Errorf("%s: %w", m.SerialNo, ErrNotFound)
			}
			cp := *live
			cur = &cp
			staged[m.SerialNo] = cur
			order = append(order, m.SerialNo)
		}

		if !Allowed(cur.Stage, m.To) {
			return nil, &InvalidTransitionError{SerialNo: m.SerialNo, From: cur.Stage, To: m.To}
		}

		if m.To == StageInService {
			cur.PrevStage = cur.Stage
			cur.PrevRef = cur.StageRef
		}
		if cur.Stage == StageRepaired {
			// leaving repaired, the prior-owner bookkeeping is spent
			cur.PrevStage = ""
			cur.PrevRef = ""
		}

		cur.Stage = m.To
		if m.To == StageAvailable {
			cur.StageRef = ""
		} else {
			cur.StageRef = m.OwnerRef
		}
	}

	updated := make([]Serial, 0, len(staged))
	for _, no := range order {
		updated = append(updated, *staged[no])
	}

	if err := r.store.UpdateBatch(updated); err != nil {
		return nil, err
	}
	for i := range updated {
		s := updated[i]
		r.serials[s.SerialNo] = &s
	}
	return updated, nil
}
