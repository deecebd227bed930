package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"catering/internal/builder"
	"catering/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticCatalog struct {
	menus []catalog.Menu
}

func (s staticCatalog) Catalog(ctx context.Context) ([]catalog.Menu, error) {
	return s.menus, nil
}

func (s staticCatalog) DishNames(ctx context.Context, ids []string) (map[string]string, error) {
	return map[string]string{}, nil
}

type stubSubmitter struct {
	result builder.Result
	forms  []builder.CheckoutForm
}

func (s *stubSubmitter) Submit(ctx context.Context, form builder.CheckoutForm) builder.Result {
	s.forms = append(s.forms, form)
	return s.result
}

// blockingSubmitter holds every Submit call until release is closed.
type blockingSubmitter struct {
	entered chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func (s *blockingSubmitter) Submit(ctx context.Context, form builder.CheckoutForm) builder.Result {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	s.entered <- struct{}{}
	<-s.release
	return builder.Result{Success: true, Message: "thanks"}
}

func testCatalog() staticCatalog {
	return staticCatalog{menus: []catalog.Menu{
		{
			ID: "A", Name: "Menu A", DishCount: 2, Price: catalog.MoneyFromInt(500),
			Dishes: []catalog.Dish{
				{ID: "D1", Name: "Chicken", Tags: []string{catalog.TagChicken}},
				{ID: "D2", Name: "Pork", Tags: []string{catalog.TagPork}},
				{ID: "D3", Name: "Beef", Tags: []string{catalog.TagBeef}},
			},
		},
		{
			ID: "B", Name: "Menu B", DishCount: 1, Price: catalog.MoneyFromInt(750),
			Dishes: []catalog.Dish{{ID: "E1", Name: "Trout", Tags: []string{catalog.TagFish}}},
		},
	}}
}

func setupWizardRouter(store *Store, sub builder.Submitter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, testCatalog(), sub, zap.NewNop())

	r := gin.New()
	g := r.Group("/api/order/drafts")
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.POST("/:id/portions", h.Portions)
	g.POST("/:id/start", h.Start)
	g.POST("/:id/next", h.Next)
	g.POST("/:id/prev", h.Prev)
	g.POST("/:id/back", h.Back)
	g.POST("/:id/toggle", h.Toggle)
	g.POST("/:id/filter", h.Filter)
	g.POST("/:id/expand", h.Expand)
	g.POST("/:id/checkout", h.Checkout)
	return r
}

type actionResponse struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	View    struct {
		Phase         string   `json:"phase"`
		ActiveMenuIDs []string `json:"activeMenuIds"`
		TotalPrice    float64  `json:"totalPrice"`
		TotalPortions int      `json:"totalPortions"`
		Completed     bool     `json:"completed"`
		Current       *struct {
			MenuID     string `json:"menuId"`
			Selected   int    `json:"selected"`
			CanAdvance bool   `json:"canAdvance"`
			Filter     string `json:"filter"`
			Groups     []struct {
				Group    string `json:"group"`
				Expanded bool   `json:"expanded"`
				Dishes   []struct {
					ID       string `json:"id"`
					Selected bool   `json:"selected"`
				} `json:"dishes"`
			} `json:"groups"`
		} `json:"current"`
		Summary *struct {
			Lines []struct {
				DishNames []string `json:"dishNames"`
			} `json:"lines"`
		} `json:"summary"`
	} `json:"view"`
}

func call(t *testing.T, r *gin.Engine, path string, body interface{}) (int, actionResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp actionResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp
}

func TestWizard_FullFlow(t *testing.T) {
	store := NewStore(10, time.Hour)
	sub := &stubSubmitter{result: builder.Result{Success: true, Message: "thanks"}}
	r := setupWizardRouter(store, sub)

	code, created := call(t, r, "/api/order/drafts", nil)
	require.Equal(t, http.StatusCreated, code)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "quantities", created.View.Phase)
	base := "/api/order/drafts/" + created.ID

	_, resp := call(t, r, base+"/start", nil)
	assert.False(t, resp.Changed)

	_, resp = call(t, r, base+"/portions", gin.H{"menuId": "B", "delta": 2})
	assert.True(t, resp.Changed)
	_, resp = call(t, r, base+"/portions", gin.H{"menuId": "A", "value": "3"})
	assert.Equal(t, []string{"A", "B"}, resp.View.ActiveMenuIDs)
	assert.Equal(t, 3000.0, resp.View.TotalPrice)

	_, resp = call(t, r, base+"/start", nil)
	require.True(t, resp.Changed)
	require.NotNil(t, resp.View.Current)
	assert.Equal(t, "A", resp.View.Current.MenuID)
	assert.Len(t, resp.View.Current.Groups, 3)

	_, resp = call(t, r, base+"/filter", gin.H{"group": "pork"})
	require.Len(t, resp.View.Current.Groups, 1)
	assert.Equal(t, "pork", resp.View.Current.Groups[0].Group)

	_, resp = call(t, r, base+"/expand", gin.H{"group": "pork"})
	assert.True(t, resp.View.Current.Groups[0].Expanded)

	call(t, r, base+"/toggle", gin.H{"menuId": "A", "dishId": "D2"})
	_, resp = call(t, r, base+"/next", nil)
	assert.False(t, resp.Changed)

	_, resp = call(t, r, base+"/toggle", gin.H{"menuId": "A", "dishId": "D3"})
	assert.True(t, resp.View.Current.CanAdvance)
	_, resp = call(t, r, base+"/toggle", gin.H{"menuId": "A", "dishId": "D1"})
	assert.False(t, resp.Changed)
	assert.Equal(t, 2, resp.View.Current.Selected)

	_, resp = call(t, r, base+"/next", nil)
	assert.Equal(t, "B", resp.View.Current.MenuID)
	assert.Equal(t, "", resp.View.Current.Filter)

	call(t, r, base+"/toggle", gin.H{"menuId": "B", "dishId": "E1"})
	_, resp = call(t, r, base+"/next", nil)
	assert.Equal(t, "checkout", resp.View.Phase)
	require.NotNil(t, resp.View.Summary)
	assert.Equal(t, []string{"Pork", "Beef"}, resp.View.Summary.Lines[0].DishNames)

	code, resp = call(t, r, base+"/checkout", builder.Contact{ClientName: "Ana", ClientEmail: "ana@example.com"})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, "thanks", resp.Message)
	assert.True(t, resp.View.Completed)

	require.Len(t, sub.forms, 1)
	payload, err := builder.ParsePayload(sub.forms[0].OrderData)
	require.NoError(t, err)
	assert.Len(t, payload.Orders, 2)
	assert.Equal(t, 5, payload.TotalPortions)

	code, _ = call(t, r, base+"/next", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWizard_FailedCheckoutKeepsDraft(t *testing.T) {
	store := NewStore(10, time.Hour)
	sub := &stubSubmitter{result: builder.Result{Success: false, Message: "eventDate: required"}}
	r := setupWizardRouter(store, sub)

	_, created := call(t, r, "/api/order/drafts", nil)
	base := "/api/order/drafts/" + created.ID
	call(t, r, base+"/portions", gin.H{"menuId": "B", "value": "1"})
	call(t, r, base+"/start", nil)
	call(t, r, base+"/toggle", gin.H{"menuId": "B", "dishId": "E1"})
	call(t, r, base+"/next", nil)

	code, resp := call(t, r, base+"/checkout", builder.Contact{ClientName: "Ana"})
	require.Equal(t, http.StatusOK, code)
	assert.False(t, resp.Success)
	assert.Equal(t, "checkout", resp.View.Phase)
	assert.False(t, resp.View.Completed)
	assert.Equal(t, 1, store.Len())

	sub.result = builder.Result{Success: true}
	_, resp = call(t, r, base+"/checkout", builder.Contact{ClientName: "Ana"})
	assert.True(t, resp.Success)
	assert.Equal(t, 0, store.Len())
}

func TestWizard_ConcurrentCheckoutConflicts(t *testing.T) {
	store := NewStore(10, time.Hour)
	sub := &blockingSubmitter{entered: make(chan struct{}, 2), release: make(chan struct{})}
	r := setupWizardRouter(store, sub)

	_, created := call(t, r, "/api/order/drafts", nil)
	base := "/api/order/drafts/" + created.ID
	call(t, r, base+"/portions", gin.H{"menuId": "B", "value": "1"})
	call(t, r, base+"/start", nil)
	call(t, r, base+"/toggle", gin.H{"menuId": "B", "dishId": "E1"})
	_, resp := call(t, r, base+"/next", nil)
	require.Equal(t, "checkout", resp.View.Phase)

	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		req := httptest.NewRequest(http.MethodPost, base+"/checkout", bytes.NewBufferString(`{"clientName":"Ana"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(first, req)
	}()

	select {
	case <-sub.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first checkout never reached the submitter")
	}

	code, resp := call(t, r, base+"/checkout", builder.Contact{ClientName: "Ana"})
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, resp.Success)

	close(sub.release)
	<-done

	require.Equal(t, http.StatusOK, first.Code)
	var firstResp actionResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
	assert.True(t, firstResp.Success)
	assert.True(t, firstResp.View.Completed)
	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, 0, store.Len())
}

func TestWizard_CheckoutBeforeCheckoutPhase(t *testing.T) {
	r := setupWizardRouter(NewStore(10, time.Hour), &stubSubmitter{})

	_, created := call(t, r, "/api/order/drafts", nil)
	code, resp := call(t, r, "/api/order/drafts/"+created.ID+"/checkout", builder.Contact{})
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, resp.Success)
}

func TestWizard_PortionsRequest(t *testing.T) {
	r := setupWizardRouter(NewStore(10, time.Hour), &stubSubmitter{})
	_, created := call(t, r, "/api/order/drafts", nil)
	base := "/api/order/drafts/" + created.ID

	code, _ := call(t, r, base+"/portions", gin.H{"menuId": "A"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, r, base+"/portions", gin.H{"menuId": "A", "delta": 1, "value": "2"})
	assert.Equal(t, http.StatusBadRequest, code)

	_, resp := call(t, r, base+"/portions", gin.H{"menuId": "A", "value": "abc"})
	assert.Equal(t, 0, resp.View.TotalPortions)

	_, resp = call(t, r, base+"/portions", gin.H{"menuId": "A", "delta": -3})
	assert.Equal(t, 0, resp.View.TotalPortions)

	_, resp = call(t, r, base+"/portions", gin.H{"menuId": "A", "value": "99999999999999999999"})
	assert.Equal(t, builder.MaxPortions, resp.View.TotalPortions)

	_, resp = call(t, r, base+"/portions", gin.H{"menuId": "A", "delta": math.MaxInt})
	assert.False(t, resp.Changed)
	assert.Equal(t, builder.MaxPortions, resp.View.TotalPortions)
}

func TestWizard_UnknownDraft(t *testing.T) {
	r := setupWizardRouter(NewStore(10, time.Hour), &stubSubmitter{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/order/drafts/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStore_Capacity(t *testing.T) {
	s := NewStore(2, time.Hour)
	b, err := builder.New(testCatalog().menus)
	require.NoError(t, err)

	first, _ := s.Create(b)
	s.Create(b)
	s.Create(b)

	_, ok := s.Get(first)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}
