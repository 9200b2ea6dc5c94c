package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

func seedUser(t *testing.T, s *UserStore, id, email string, mutate func(u *domain.User)) {
	t.Helper()
	u := &domain.User{ID: id, Email: email, Name: id, Role: domain.RoleWorker}
	if mutate != nil {
		mutate(u)
	}
	_, err := s.Insert(context.Background(), u)
	require.NoError(t, err)
}

func TestUserStore_InsertRejectsDuplicateEmail(t *testing.T) {
	users := NewDB().Users()
	seedUser(t, users, "u1", "a@example.com", nil)

	_, err := users.Insert(context.Background(), &domain.User{ID: "u2", Email: "A@example.com"})
	require.Error(t, err)
	var dk *errs.DuplicateKeyError
	require.ErrorAs(t, err, &dk)
	assert.Equal(t, "email", dk.Field)
}

func TestUserStore_FindManyAppliesProjectionSortAndPaging(t *testing.T) {
	users := NewDB().Users()
	for i, r := range []float64{3, 5, 1, 4} {
		id := string(rune('a' + i))
		seedUser(t, users, id, id+"@example.com", func(u *domain.User) { u.Reviews = r })
	}

	got, err := users.FindMany(context.Background(), domain.UserQuery{}, domain.FindOptions{
		Projection: domain.ProjectionPublic,
		Sort:       domain.Sort{Field: domain.SortFieldReviews, Order: domain.SortDesc},
		Skip:       1,
		Limit:      2,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4.0, got[0].Reviews)
	assert.Equal(t, 3.0, got[1].Reviews)
	for _, u := range got {
		assert.Empty(t, u.Email)
	}

	empty, err := users.FindMany(context.Background(), domain.UserQuery{}, domain.FindOptions{Skip: 10, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserStore_ReturnedUsersAreCopies(t *testing.T) {
	users := NewDB().Users()
	seedUser(t, users, "u1", "u1@example.com", func(u *domain.User) {
		u.Subjects = []domain.Subject{domain.SubjectMath}
	})

	got, err := users.Get(context.Background(), "u1")
	require.NoError(t, err)
	got.Subjects[0] = domain.SubjectArt

	again, err := users.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectMath, again.Subjects[0])
}

func TestJobStore_InsertGuardedChecksWorker(t *testing.T) {
	db := NewDB()
	seedUser(t, db.Users(), "w1", "w1@example.com", func(u *domain.User) {
		u.Subjects = []domain.Subject{domain.SubjectMath}
	})
	jobs := db.Jobs()

	guard := domain.UserQuery{HasSubject: domain.Ptr(domain.SubjectPhysics)}
	got, err := jobs.InsertGuarded(context.Background(), &domain.Job{ID: "j1", WorkerID: "w1"}, guard)
	require.NoError(t, err)
	assert.Nil(t, got)

	guard = domain.UserQuery{HasSubject: domain.Ptr(domain.SubjectMath)}
	got, err = jobs.InsertGuarded(context.Background(), &domain.Job{ID: "j1", WorkerID: "w1"}, guard)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestJobStore_ConditionalUpdateIsExclusive(t *testing.T) {
	jobs := NewDB().Jobs()
	_, err := jobs.Insert(context.Background(), &domain.Job{ID: "j1", WorkerID: "w1", Status: domain.JobStatusInProgress})
	require.NoError(t, err)

	query := domain.JobQuery{
		ID:       domain.Ptr("j1"),
		WorkerID: domain.Ptr("w1"),
		Status:   domain.Ptr(domain.JobStatusInProgress),
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  int
		statuses = []domain.JobStatus{domain.JobStatusCompleted, domain.JobStatusCancelled}
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := jobs.ConditionalUpdate(context.Background(), query, domain.JobPatch{Status: &statuses[i%2]})
			assert.NoError(t, err)
			if got != nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}
