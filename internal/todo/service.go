package todo

import (
	"context"
	"fmt"
	"sync"

	"todopad/internal/utils"
)

// Repository persists the whole collection as one snapshot.
type Repository interface {
	// Load returns the stored collection and whether anything was stored.
	Load(ctx context.Context) (Collection, bool, error)
	// Save overwrites the stored collection.
	Save(ctx context.Context, c Collection) error
}

// Options tune the start-up policy.
type Options struct {
	// Seed loads the bundled collection when the store is empty.
	Seed bool
}

// Service owns the todo collection. Every read-modify-write of the
// repository goes through it, so screens never write the store directly.
type Service struct {
	mu     sync.Mutex
	repo   Repository
	opts   Options
	list   *List
	loaded bool
}

// NewService creates a service over repo.
func NewService(repo Repository, opts Options) *Service {
	return &Service{
		repo: repo,
		opts: opts,
		list: NewList(nil),
	}
}

// Load reads the repository and installs the initial list.
//
// A stored non-empty collection wins. Otherwise the seed collection is used
// (when enabled) and written back. Read failures leave the list empty; the
// returned collection is always usable and the error only reports why the
// list degraded.
func (s *Service) Load(ctx context.Context) (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.loadLocked(ctx)
	return s.list.Items(), err
}

func (s *Service) loadLocked(ctx context.Context) error {
	s.loaded = true

	stored, ok, err := s.repo.Load(ctx)
	if err != nil {
		utils.Debugf("load todos: %v", err)
		s.list = NewList(nil)
		return err
	}
	if ok && len(stored) > 0 {
		SortByIDDesc(stored)
		s.list = NewList(stored)
		utils.Debugf("loaded %d todos", len(stored))
		return nil
	}

	if !s.opts.Seed {
		s.list = NewList(nil)
		return nil
	}
	seed, err := Seed()
	if err != nil {
		utils.Debugf("seed todos: %v", err)
		s.list = NewList(nil)
		return err
	}
	s.list = NewList(seed)
	utils.Debugf("store empty, using %d seed todos", len(seed))
	return s.saveLocked(ctx)
}

func (s *Service) ensureLoaded(ctx context.Context) {
	if !s.loaded {
		_ = s.loadLocked(ctx)
	}
}

func (s *Service) saveLocked(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.list.Items()); err != nil {
		utils.Debugf("save todos: %v", err)
		return err
	}
	return nil
}

// Items returns the current list.
func (s *Service) Items(ctx context.Context) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return s.list.Items()
}

// Add prepends a todo and persists the collection. Blank titles are a
// no-op and report false.
func (s *Service) Add(ctx context.Context, title string) (Todo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	t, ok := s.list.Add(title)
	if !ok {
		return Todo{}, false, nil
	}
	return t, true, s.saveLocked(ctx)
}

// Toggle flips completion of the matching todo and persists the
// collection. An unknown id is a silent no-op.
func (s *Service) Toggle(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if !s.list.Toggle(id) {
		return false, nil
	}
	return true, s.saveLocked(ctx)
}

// Remove drops the matching todo and persists the collection.
func (s *Service) Remove(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if !s.list.Remove(id) {
		return false, nil
	}
	return true, s.saveLocked(ctx)
}

// Get reads the repository and returns the todo with the given id. The
// start-up policy runs first, so a seed about to be written is visible.
func (s *Service) Get(ctx context.Context, id int) (Todo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	stored, _, err := s.repo.Load(ctx)
	if err != nil {
		utils.Debugf("load todo %d: %v", id, err)
		return Todo{}, false, err
	}
	for _, t := range stored {
		if t.ID == id {
			return t, true, nil
		}
	}
	return Todo{}, false, nil
}

// Update re-reads the repository, applies fn and writes the result back
// while holding the service lock. The owned list is refreshed from the
// written collection.
func (s *Service) Update(ctx context.Context, fn func(Collection) Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, _, err := s.repo.Load(ctx)
	if err != nil {
		utils.Debugf("update todos: %v", err)
		return err
	}
	next := fn(stored.Clone())
	if err := s.repo.Save(ctx, next); err != nil {
		utils.Debugf("update todos: %v", err)
		return err
	}

	sorted := next.Clone()
	SortByIDDesc(sorted)
	s.list = NewList(sorted)
	s.loaded = true
	return nil
}

// SaveEdit writes an edited draft back: the record with the draft's id is
// removed and the draft appended. A draft whose id is not stored is
// inserted under that id.
func (s *Service) SaveEdit(ctx context.Context, draft Todo) error {
	if err := s.Update(ctx, func(c Collection) Collection {
		return ReplaceByID(c, draft)
	}); err != nil {
		return fmt.Errorf("save todo %d: %w", draft.ID, err)
	}
	utils.Debugf("saved edit of todo %d", draft.ID)
	return nil
}
