package visit

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adotapet/adotapet-api/internal/models"
)

// memStore é uma implementação em memória de Store para os testes.
// DecideRequest reproduz a semântica do UPDATE condicional: checagem e
// mutação sob o mesmo lock.
type memStore struct {
	mu       sync.Mutex
	posts    map[uuid.UUID]PostRef
	contacts map[uuid.UUID]string // whatsapp por dono
	requests map[uuid.UUID]*models.VisitRequest
}

func newMemStore() *memStore {
	return &memStore{
		posts:    make(map[uuid.UUID]PostRef),
		contacts: make(map[uuid.UUID]string),
		requests: make(map[uuid.UUID]*models.VisitRequest),
	}
}

func (m *memStore) addPost(ownerID uuid.UUID, status string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.posts[id] = PostRef{ID: id, OwnerID: ownerID, Status: status}
	return id
}

func (m *memStore) GetPost(_ context.Context, postID uuid.UUID) (PostRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[postID]
	if !ok {
		return PostRef{}, ErrPostNotFound
	}
	return post, nil
}

func (m *memStore) CreateRequest(_ context.Context, postID, requesterID uuid.UUID, message *string) (models.VisitRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.requests {
		if r.PostID == postID && r.RequesterID == requesterID {
			return models.VisitRequest{}, ErrAlreadyRequested
		}
	}

	now := time.Now()
	req := &models.VisitRequest{
		ID:          uuid.New(),
		PostID:      postID,
		RequesterID: requesterID,
		Message:     message,
		Status:      models.VisitStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.requests[req.ID] = req
	return *req, nil
}

func (m *memStore) ListByRequester(_ context.Context, requesterID uuid.UUID) ([]models.MyVisitRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.MyVisitRequest, 0)
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			out = append(out, models.MyVisitRequest{VisitRequest: *r})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]models.ReceivedVisitRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.ReceivedVisitRequest, 0)
	for _, r := range m.requests {
		if m.posts[r.PostID].OwnerID == ownerID {
			out = append(out, models.ReceivedVisitRequest{VisitRequest: *r})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) DecideRequest(_ context.Context, requestID, ownerID uuid.UUID, status string) (models.VisitDecision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[requestID]
	if !ok || m.posts[r.PostID].OwnerID != ownerID || r.Status != models.VisitStatusPending {
		return models.VisitDecision{}, ErrNotDecidable
	}

	r.Status = status
	r.UpdatedAt = time.Now()
	return models.VisitDecision{
		ID:          r.ID,
		PostID:      r.PostID,
		RequesterID: r.RequesterID,
		Status:      r.Status,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func (m *memStore) ApprovedContact(_ context.Context, postID, requesterID uuid.UUID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.requests {
		if r.PostID == postID && r.RequesterID == requesterID && r.Status == models.VisitStatusApproved {
			return m.contacts[m.posts[postID].OwnerID], nil
		}
	}
	return "", ErrContactNotReleased
}

func TestCreateVisitRequest(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	owner := uuid.New()
	requester := uuid.New()
	postID := store.addPost(owner, models.PostStatusActive)

	req, err := wf.Create(ctx, postID, requester, "Posso visitar?")
	require.NoError(t, err)
	assert.Equal(t, models.VisitStatusPending, req.Status)
	assert.Equal(t, postID, req.PostID)
	assert.Equal(t, requester, req.RequesterID)
	require.NotNil(t, req.Message)
	assert.Equal(t, "Posso visitar?", *req.Message)
}

func TestCreateVisitRequest_EmptyMessageBecomesNil(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	postID := store.addPost(uuid.New(), models.PostStatusActive)

	req, err := wf.Create(ctx, postID, uuid.New(), "   ")
	require.NoError(t, err)
	assert.Nil(t, req.Message)
}

func TestCreateVisitRequest_OwnPost(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	owner := uuid.New()
	postID := store.addPost(owner, models.PostStatusActive)

	_, err := wf.Create(ctx, postID, owner, "")
	assert.ErrorIs(t, err, ErrOwnPost)
}

func TestCreateVisitRequest_Duplicate(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	requester := uuid.New()
	postID := store.addPost(uuid.New(), models.PostStatusActive)

	_, err := wf.Create(ctx, postID, requester, "primeira")
	require.NoError(t, err)

	_, err = wf.Create(ctx, postID, requester, "segunda")
	assert.ErrorIs(t, err, ErrAlreadyRequested)
}

func TestCreateVisitRequest_InactivePost(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	postID := store.addPost(uuid.New(), models.PostStatusResolved)

	_, err := wf.Create(ctx, postID, uuid.New(), "")
	assert.ErrorIs(t, err, ErrPostNotActive)
}

func TestCreateVisitRequest_UnknownPost(t *testing.T) {
	wf := NewWorkflow(newMemStore())

	_, err := wf.Create(context.Background(), uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDecide_InvalidStatus(t *testing.T) {
	wf := NewWorkflow(newMemStore())

	_, err := wf.Decide(context.Background(), uuid.New(), uuid.New(), "PENDING")
	assert.ErrorIs(t, err, ErrInvalidDecision)

	_, err = wf.Decide(context.Background(), uuid.New(), uuid.New(), "approved")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestDecide_ApproveAndReject(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	owner := uuid.New()
	postID := store.addPost(owner, models.PostStatusActive)

	req, err := wf.Create(ctx, postID, uuid.New(), "")
	require.NoError(t, err)

	decision, err := wf.Decide(ctx, req.ID, owner, models.VisitStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.VisitStatusApproved, decision.Status)

	// Estados terminais não podem ser decididos de novo
	_, err = wf.Decide(ctx, req.ID, owner, models.VisitStatusRejected)
	assert.ErrorIs(t, err, ErrNotDecidable)
}

func TestDecide_NotOwner(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	postID := store.addPost(uuid.New(), models.PostStatusActive)

	req, err := wf.Create(ctx, postID, uuid.New(), "")
	require.NoError(t, err)

	// Quem não é dono recebe a mesma resposta de uma solicitação inexistente
	_, err = wf.Decide(ctx, req.ID, uuid.New(), models.VisitStatusApproved)
	assert.ErrorIs(t, err, ErrNotDecidable)
}

func TestDecide_UnknownRequest(t *testing.T) {
	wf := NewWorkflow(newMemStore())

	_, err := wf.Decide(context.Background(), uuid.New(), uuid.New(), models.VisitStatusApproved)
	assert.ErrorIs(t, err, ErrNotDecidable)
}

func TestContact_OnlyAfterApproval(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	owner := uuid.New()
	requester := uuid.New()
	store.contacts[owner] = "+5511999990000"
	postID := store.addPost(owner, models.PostStatusActive)

	// Sem solicitação nenhuma
	_, err := wf.Contact(ctx, postID, requester)
	assert.ErrorIs(t, err, ErrContactNotReleased)

	req, err := wf.Create(ctx, postID, requester, "")
	require.NoError(t, err)

	// PENDING ainda não libera
	_, err = wf.Contact(ctx, postID, requester)
	assert.ErrorIs(t, err, ErrContactNotReleased)

	_, err = wf.Decide(ctx, req.ID, owner, models.VisitStatusApproved)
	require.NoError(t, err)

	contact, err := wf.Contact(ctx, postID, requester)
	require.NoError(t, err)
	assert.Equal(t, "+5511999990000", contact)

	// A aprovação é de quem pediu, não de terceiros
	_, err = wf.Contact(ctx, postID, uuid.New())
	assert.ErrorIs(t, err, ErrContactNotReleased)
}

func TestContact_RejectedNeverReleases(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	owner := uuid.New()
	requester := uuid.New()
	store.contacts[owner] = "+5511988887777"
	postID := store.addPost(owner, models.PostStatusActive)

	req, err := wf.Create(ctx, postID, requester, "")
	require.NoError(t, err)

	_, err = wf.Decide(ctx, req.ID, owner, models.VisitStatusRejected)
	require.NoError(t, err)

	_, err = wf.Contact(ctx, postID, requester)
	assert.ErrorIs(t, err, ErrContactNotReleased)
}

func TestDecide_ConcurrentExactlyOneWins(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	owner := uuid.New()
	postID := store.addPost(owner, models.PostStatusActive)

	req, err := wf.Create(ctx, postID, uuid.New(), "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	statuses := []string{models.VisitStatusApproved, models.VisitStatusRejected}

	for i, status := range statuses {
		wg.Add(1)
		go func(i int, status string) {
			defer wg.Done()
			_, errs[i] = wf.Decide(ctx, req.ID, owner, status)
		}(i, status)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrNotDecidable):
			losses++
		default:
			t.Fatalf("erro inesperado: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)
}

// Cenário completo: bob anuncia, alice pede visita e é aprovada,
// carol pede e é rejeitada.
func TestVisitLifecycle(t *testing.T) {
	store := newMemStore()
	wf := NewWorkflow(store)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()
	store.contacts[bob] = "+5511912345678"
	postID := store.addPost(bob, models.PostStatusActive)

	aliceReq, err := wf.Create(ctx, postID, alice, "Posso visitar no sábado?")
	require.NoError(t, err)

	carolReq, err := wf.Create(ctx, postID, carol, "")
	require.NoError(t, err)

	received, err := wf.ListReceived(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, received, 2)

	_, err = wf.Decide(ctx, aliceReq.ID, bob, models.VisitStatusApproved)
	require.NoError(t, err)

	_, err = wf.Decide(ctx, carolReq.ID, bob, models.VisitStatusRejected)
	require.NoError(t, err)

	contact, err := wf.Contact(ctx, postID, alice)
	require.NoError(t, err)
	assert.Equal(t, "+5511912345678", contact)

	_, err = wf.Contact(ctx, postID, carol)
	assert.ErrorIs(t, err, ErrContactNotReleased)

	mine, err := wf.ListMine(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.VisitStatusApproved, mine[0].Status)
}
