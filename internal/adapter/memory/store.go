package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gitlab.com/wizardhub.net/internal/core/ports/secondary"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

var (
	_ secondary.UserStore = (*UserStore)(nil)
	_ secondary.JobStore  = (*JobStore)(nil)
)

// DB holds both collections under one lock so guarded inserts that read
// users and write jobs are atomic.
type DB struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	userOrder []string
	jobs      map[string]*domain.Job
}

func NewDB() *DB {
	return &DB{
		users: make(map[string]*domain.User),
		jobs:  make(map[string]*domain.Job),
	}
}

func (db *DB) Users() *UserStore {
	return &UserStore{db: db}
}

func (db *DB) Jobs() *JobStore {
	return &JobStore{db: db}
}

type UserStore struct {
	db *DB
}

func (s *UserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, nil
	}
	return u.Clone(), nil
}

func (s *UserStore) FindOne(ctx context.Context, query domain.UserQuery, projection domain.Projection) (*domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, id := range s.db.userOrder {
		u := s.db.users[id]
		if query.Matches(u) {
			return projection.Apply(u.Clone()), nil
		}
	}
	return nil, nil
}

func (s *UserStore) FindMany(ctx context.Context, query domain.UserQuery, opts domain.FindOptions) ([]*domain.User, error) {
	s.db.mu.RLock()
	matched := s.db.matchUsers(query)
	s.db.mu.RUnlock()

	sortUsers(matched, opts.Sort)

	if opts.Skip < 0 || opts.Skip >= len(matched) {
		return []*domain.User{}, nil
	}
	matched = matched[opts.Skip:]
	if opts.Limit > 0 {
		matched = matched[:min(opts.Limit, len(matched))]
	}

	out := make([]*domain.User, 0, len(matched))
	for _, u := range matched {
		out = append(out, opts.Projection.Apply(u))
	}
	return out, nil
}

func (s *UserStore) Count(ctx context.Context, query domain.UserQuery) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	n := 0
	for _, u := range s.db.users {
		if query.Matches(u) {
			n++
		}
	}
	return n, nil
}

func (s *UserStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[user.ID]; ok {
		return nil, &errs.DuplicateKeyError{Field: "id"}
	}
	for _, existing := range s.db.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, &errs.DuplicateKeyError{Field: "email"}
		}
		if user.ExternalUID != nil && existing.ExternalUID != nil && *existing.ExternalUID == *user.ExternalUID {
			return nil, &errs.DuplicateKeyError{Field: "externalUid"}
		}
	}

	stored := user.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.db.users[stored.ID] = stored
	s.db.userOrder = append(s.db.userOrder, stored.ID)
	return stored.Clone(), nil
}

func (s *UserStore) ConditionalUpdate(ctx context.Context, query domain.UserQuery, patch domain.UserPatch) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, id := range s.db.userOrder {
		u := s.db.users[id]
		if query.Matches(u) {
			patch.ApplyTo(u)
			return u.Clone(), nil
		}
	}
	return nil, nil
}

func (s *UserStore) Aggregate(ctx context.Context, pipeline domain.Pipeline) ([]domain.WizardSummary, error) {
	s.db.mu.RLock()
	matched := s.db.matchUsers(pipeline.Match)
	s.db.mu.RUnlock()

	sortUsers(matched, pipeline.Sort)
	if pipeline.Limit > 0 {
		matched = matched[:min(pipeline.Limit, len(matched))]
	}

	out := make([]domain.WizardSummary, 0, len(matched))
	for _, u := range matched {
		out = append(out, pipeline.Summarize(u))
	}
	return out, nil
}

// matchUsers returns clones in insertion order. Caller holds the read lock.
func (db *DB) matchUsers(query domain.UserQuery) []*domain.User {
	matched := make([]*domain.User, 0)
	for _, id := range db.userOrder {
		u := db.users[id]
		if query.Matches(u) {
			matched = append(matched, u.Clone())
		}
	}
	return matched
}

func sortUsers(users []*domain.User, s domain.Sort) {
	if !s.IsSet() {
		return
	}
	key := func(u *domain.User) float64 {
		if s.Field == domain.SortFieldExpJobs {
			return float64(u.Experience.ExpJobs)
		}
		return u.Reviews
	}
	sort.SliceStable(users, func(i, j int) bool {
		if s.Order == domain.SortDesc {
			return key(users[i]) > key(users[j])
		}
		return key(users[i]) < key(users[j])
	})
}

type JobStore struct {
	db *DB
}

func (s *JobStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	j, ok := s.db.jobs[id]
	if !ok {
		return nil, nil
	}
	return j.Clone(), nil
}

func (s *JobStore) Insert(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.insertLocked(job)
}

func (s *JobStore) InsertGuarded(ctx context.Context, job *domain.Job, guard domain.UserQuery) (*domain.Job, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	guard.ID = &job.WorkerID
	if !guard.Matches(s.db.users[job.WorkerID]) {
		return nil, nil
	}
	return s.insertLocked(job)
}

func (s *JobStore) insertLocked(job *domain.Job) (*domain.Job, error) {
	if _, ok := s.db.jobs[job.ID]; ok {
		return nil, &errs.DuplicateKeyError{Field: "id"}
	}
	stored := job.Clone()
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.db.jobs[stored.ID] = stored
	return stored.Clone(), nil
}

func (s *JobStore) ConditionalUpdate(ctx context.Context, query domain.JobQuery, patch domain.JobPatch) (*domain.Job, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var target *domain.Job
	if query.ID != nil {
		target = s.db.jobs[*query.ID]
	} else {
		for _, j := range s.db.jobs {
			if query.Matches(j) {
				target = j
				break
			}
		}
	}
	if !query.Matches(target) {
		return nil, nil
	}

	if patch.Status != nil {
		target.Status = *patch.Status
	}
	if patch.ClientReview != nil {
		r := *patch.ClientReview
		target.ClientReview = &r
	}
	target.UpdatedAt = time.Now().UTC()
	return target.Clone(), nil
}
