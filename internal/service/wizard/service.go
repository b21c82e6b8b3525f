// Package wizard holds the per-session configurator state. Each browsing
// session owns at most one wizard of each kind; the service serializes
// access so double-clicks and parallel tabs cannot corrupt a selection.
package wizard

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"techfix-shop/internal/catalog"
	"techfix-shop/internal/configurator"
	"techfix-shop/internal/domain"
)

type catalogSource interface {
	Model(ctx context.Context) (*catalog.Model, error)
}

type cartSink interface {
	Add(ctx context.Context, sessionID string, item domain.CartItem) (*domain.CartItem, error)
}

// Service hands out wizards keyed by session id. Wizard state lives in
// memory only: an expired session starts its wizards over, which matches
// how the storefront treats an abandoned browser tab.
type Service struct {
	catalogs catalogSource
	cart     cartSink
	logger   *log.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu       sync.Mutex
	cat      *catalog.Model
	repair   *configurator.RepairWizard
	build    *configurator.BuildWizard
	print    *configurator.PrintWizard
	lastSeen time.Time
}

func New(catalogs catalogSource, cart cartSink, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		catalogs: catalogs,
		cart:     cart,
		logger:   logger,
		sessions: map[string]*session{},
	}
}

// session returns the state for a session with its lock held; the caller
// must unlock. The catalog is checked on every call: when an admin edit has
// bumped the document version the session's wizards restart against the new
// catalog, so a running wizard never validates against deleted entries. If
// the catalog cannot be loaded an already-running session keeps its last
// snapshot instead of failing the request.
func (s *Service) session(ctx context.Context, id string) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	sess.lastSeen = time.Now()
	s.mu.Unlock()

	sess.mu.Lock()
	cat, err := s.catalogs.Model(ctx)
	if err != nil {
		if sess.cat != nil {
			s.logger.Printf("catalog reload failed for session %s, keeping previous snapshot: %v", id, err)
			return sess, nil
		}
		sess.mu.Unlock()
		return nil, err
	}
	if sess.cat == nil || !sess.cat.Document().UpdatedAt.Equal(cat.Document().UpdatedAt) {
		sess.cat = cat
		sess.repair = configurator.NewRepair(cat)
		sess.build = configurator.NewBuild(cat)
		sess.print = configurator.NewPrint(cat)
	}
	return sess, nil
}

// DropSession discards a session's wizards, for example after checkout.
func (s *Service) DropSession(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Prune drops sessions idle for longer than maxAge and reports how many.
func (s *Service) Prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.logger.Printf("pruned %d idle wizard sessions", n)
	}
	return n
}

// addToCart persists a finished wizard item, then resets the wizard. The
// reset only happens after a successful write so a failed append can be
// retried without redoing the selection.
func (s *Service) addToCart(ctx context.Context, sessionID string, item domain.CartItem, err error, reset func()) (*domain.CartItem, error) {
	if err != nil {
		return nil, err
	}
	added, err := s.cart.Add(ctx, sessionID, item)
	if err != nil {
		s.logger.Printf("cart append failed for session %s: %v", sessionID, err)
		return nil, err
	}
	reset()
	return added, nil
}

// RepairState returns the repair wizard's current selections.
func (s *Service) RepairState(ctx context.Context, sessionID string) (configurator.RepairState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return configurator.RepairState{}, err
	}
	defer sess.mu.Unlock()
	return sess.repair.State(), nil
}

// RepairSelect applies one repair-wizard step and returns the new state.
func (s *Service) RepairSelect(ctx context.Context, sessionID, step, id string) (configurator.RepairState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return configurator.RepairState{}, err
	}
	defer sess.mu.Unlock()
	switch step {
	case "device":
		err = sess.repair.SelectDevice(id)
	case "brand":
		err = sess.repair.SelectBrand(id)
	case "model":
		err = sess.repair.SelectModel(id)
	default:
		err = domain.Invalid("step", "unknown repair step")
	}
	return sess.repair.State(), err
}

// RepairAddToCart finalizes the repair wizard into a cart item.
func (s *Service) RepairAddToCart(ctx context.Context, sessionID, repairID string) (*domain.CartItem, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()
	item, err := sess.repair.SelectRepair(repairID)
	return s.addToCart(ctx, sessionID, item, err, sess.repair.Reset)
}

// RepairReset starts the repair wizard over.
func (s *Service) RepairReset(ctx context.Context, sessionID string) error {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()
	sess.repair.Reset()
	return nil
}

// BuildState returns the build wizard's current selections.
func (s *Service) BuildState(ctx context.Context, sessionID string) (configurator.BuildState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return configurator.BuildState{}, err
	}
	defer sess.mu.Unlock()
	return sess.build.State(), nil
}

// BuildSelect applies one build-wizard step and returns the new state. The
// branch steps go through their dedicated setters; everything else is a
// plain part or option selection.
func (s *Service) BuildSelect(ctx context.Context, sessionID, step, id string) (configurator.BuildState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return configurator.BuildState{}, err
	}
	defer sess.mu.Unlock()
	switch step {
	case configurator.StepBuildType:
		err = sess.build.SelectBuildType(id)
	case configurator.StepServerType:
		err = sess.build.SelectServerType(id)
	default:
		err = sess.build.Set(step, id)
	}
	return sess.build.State(), err
}

// BuildAddToCart finalizes the build wizard into a cart item.
func (s *Service) BuildAddToCart(ctx context.Context, sessionID string) (*domain.CartItem, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()
	item, err := sess.build.AddToCart()
	return s.addToCart(ctx, sessionID, item, err, sess.build.Reset)
}

// BuildReset starts the build wizard over.
func (s *Service) BuildReset(ctx context.Context, sessionID string) error {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()
	sess.build.Reset()
	return nil
}

// PrintState returns the print wizard's current selections.
func (s *Service) PrintState(ctx context.Context, sessionID string) (configurator.PrintState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return configurator.PrintState{}, err
	}
	defer sess.mu.Unlock()
	return sess.print.State(), nil
}

// PrintSelect applies one print-wizard field and returns the new state.
// Colors address a slot; partsCount carries a number, the rest catalog ids.
func (s *Service) PrintSelect(ctx context.Context, sessionID, field string, slot int, value string, count int) (configurator.PrintState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return configurator.PrintState{}, err
	}
	defer sess.mu.Unlock()
	switch field {
	case "printer":
		err = sess.print.SelectPrinter(value)
	case "filament":
		err = sess.print.SetFilament(value)
	case "color":
		err = sess.print.SetColor(slot, value)
	case "strength":
		err = sess.print.SetStrength(value)
	case "partsCount":
		err = sess.print.SetPartsCount(count)
	case "file":
		err = sess.print.SetFile(value)
	default:
		err = domain.Invalid("field", "unknown print field")
	}
	return sess.print.State(), err
}

// PrintAddToCart finalizes the print wizard into a cart item.
func (s *Service) PrintAddToCart(ctx context.Context, sessionID string) (*domain.CartItem, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()
	item, err := sess.print.AddToCart()
	return s.addToCart(ctx, sessionID, item, err, sess.print.Reset)
}

// PrintReset starts the print wizard over.
func (s *Service) PrintReset(ctx context.Context, sessionID string) error {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()
	sess.print.Reset()
	return nil
}
