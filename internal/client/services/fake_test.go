package services

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/dmitrijs2005/luggify/internal/client/client"
	"github.com/dmitrijs2005/luggify/internal/client/localstore"
	"github.com/dmitrijs2005/luggify/internal/client/models"
	"github.com/dmitrijs2005/luggify/internal/client/repositories/checklists"
	"github.com/dmitrijs2005/luggify/internal/common"
	"github.com/dmitrijs2005/luggify/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client. It keeps a tiny server-side copy of
// every checklist so PatchState can echo realistic answers.
type fakeClient struct {
	mu     sync.Mutex
	server map[string]models.Checklist

	// preset results
	GenerateRet *models.Checklist
	GenerateErr error
	FetchErr    error
	PatchErr    error
	PatchErrFor map[string]error
	ListRet     []models.Checklist
	ListErr     error
	SaveRet     *models.Checklist
	SaveErr     error
	DeleteErr   error
	CitiesRet   []models.City
	CitiesErr   error

	// PatchHook runs inside PatchState before it answers.
	PatchHook func(slug string)

	// captured inputs
	GenerateCalls []models.PackingRequest
	FetchCalls    []string
	PatchCalls    []string
	LastPatch     map[string]models.StateUpdate
	DeleteCalls   []string
	ListCalls     []string
	LastSave      *models.SaveRequest
	LastPrefix    string
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		server:    make(map[string]models.Checklist),
		LastPatch: make(map[string]models.StateUpdate),
	}
}

func (f *fakeClient) seed(c models.Checklist) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.NeedsSync = false
	c.DailyForecast = models.UnknownForecast()
	f.server[c.Slug] = c.Clone()
}

func (f *fakeClient) serverCopy(slug string) (models.Checklist, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.server[slug]
	return c.Clone(), ok
}

func (f *fakeClient) patchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.PatchCalls)
}

func (f *fakeClient) Close() error                   { return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) SearchCities(ctx context.Context, prefix string) ([]models.City, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastPrefix = prefix
	return slices.Clone(f.CitiesRet), f.CitiesErr
}

func (f *fakeClient) Generate(ctx context.Context, req models.PackingRequest) (*models.Checklist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GenerateCalls = append(f.GenerateCalls, req)
	if f.GenerateErr != nil {
		return nil, f.GenerateErr
	}
	out := f.GenerateRet.Clone()
	return &out, nil
}

func (f *fakeClient) FetchChecklist(ctx context.Context, slug string) (*models.Checklist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchCalls = append(f.FetchCalls, slug)
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	c, ok := f.server[slug]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := c.Clone()
	return &out, nil
}

func (f *fakeClient) PatchState(ctx context.Context, slug string, st models.StateUpdate) (*models.Checklist, error) {
	f.mu.Lock()
	f.PatchCalls = append(f.PatchCalls, slug)
	f.LastPatch[slug] = st
	err := f.PatchErr
	if e, ok := f.PatchErrFor[slug]; ok {
		err = e
	}
	hook := f.PatchHook
	f.mu.Unlock()

	if hook != nil {
		hook(slug)
	}
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.server[slug]
	c.Slug = slug
	c.Items = slices.Clone(st.Items)
	c.CheckedItems = slices.Clone(st.CheckedItems)
	c.RemovedItems = slices.Clone(st.RemovedItems)
	c.AddedItems = slices.Clone(st.AddedItems)
	c.DailyForecast = models.UnknownForecast()
	f.server[slug] = c
	out := c.Clone()
	return &out, nil
}

func (f *fakeClient) DeleteChecklist(ctx context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls = append(f.DeleteCalls, slug)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.server, slug)
	return nil
}

func (f *fakeClient) ListChecklists(ctx context.Context, ownerID string) ([]models.Checklist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls = append(f.ListCalls, ownerID)
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.Checklist, len(f.ListRet))
	for i, c := range f.ListRet {
		out[i] = c.Clone()
	}
	return out, nil
}

func (f *fakeClient) SaveOwned(ctx context.Context, req models.SaveRequest) (*models.Checklist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastSave = &req
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	out := f.SaveRet.Clone()
	return &out, nil
}

// failingRepo fails every call with err.
type failingRepo struct{ err error }

func (r failingRepo) GetAll(context.Context) ([]models.Checklist, error)        { return nil, r.err }
func (r failingRepo) GetAllPending(context.Context) ([]models.Checklist, error) { return nil, r.err }
func (r failingRepo) GetBySlug(context.Context, string) (*models.Checklist, error) {
	return nil, r.err
}
func (r failingRepo) Upsert(context.Context, *models.Checklist) error      { return r.err }
func (r failingRepo) DeleteBySlug(context.Context, string) error           { return r.err }
func (r failingRepo) ReplaceAll(context.Context, []models.Checklist) error { return r.err }
func (r failingRepo) Update(context.Context, string, checklists.UpdateFunc) (*models.Checklist, error) {
	return nil, r.err
}

type env struct {
	client *fakeClient
	store  *localstore.Store
	repos  *client.Repositories
	svc    ChecklistService
}

func setup(t *testing.T, online bool, opts ...Option) *env {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := client.NewRepositories(db)
	store := localstore.New(repos.Checklists, logging.Nop())
	fc := newFakeClient()
	return &env{
		client: fc,
		store:  store,
		repos:  repos,
		svc:    NewChecklistService(fc, store, StaticConnectivity(online), logging.Nop(), opts...),
	}
}

func sampleForecast() models.Forecast {
	return models.PresentForecast([]models.DailyForecast{
		{Date: "2025-06-01", TempMin: 14, TempMax: 24, Condition: "Clear", Icon: "01d"},
		{Date: "2025-06-02", TempMin: 15, TempMax: 22, Condition: "Rain", Icon: "10d"},
	})
}

func parisChecklist() models.Checklist {
	return models.Checklist{
		Slug:      "abc123",
		City:      "Paris",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-05",
		Items:     []string{"Passport", "Socks", "Charger", "Toothbrush", "Jacket"},
	}
}
