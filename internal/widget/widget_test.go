package widget

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eve-dashboard/internal/config"
	"eve-dashboard/internal/loader"
	"eve-dashboard/internal/models"
)

func staticLoader(records []models.Record, err error) loader.Loader {
	return loader.Func(func(ctx context.Context) ([]models.Record, error) {
		return records, err
	})
}

func httpWidget(t *testing.T, status int, body string) *Widget {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(loader.NewHTTPLoader(srv.URL+loader.EvePath, config.FormatArray, time.Second))
}

func TestWidget_InitialStateIsLoading(t *testing.T) {
	w := New(staticLoader(nil, nil))

	snap := w.Snapshot()
	assert.Equal(t, Loading, snap.State)
	assert.Equal(t, "loading", snap.State.String())
}

func TestWidget_Ready(t *testing.T) {
	w := httpWidget(t, http.StatusOK, `[{"alert":{"signature":"X"}},{"alert":{"signature":"Y"}},{"alert":{"signature":"X"}}]`)

	snap := w.Activate(context.Background())

	require.Equal(t, Ready, snap.State)
	assert.Equal(t, []string{"X", "Y"}, snap.Series.Labels)
	assert.Equal(t, []int{2, 1}, snap.Series.Counts)
	assert.Len(t, snap.Series.Colors, 2)
	assert.Empty(t, snap.Message)
}

func TestWidget_ReadyWithoutSignatures(t *testing.T) {
	w := httpWidget(t, http.StatusOK, `[{}, {"alert":{}}, {"foo":1}]`)

	snap := w.Activate(context.Background())

	require.Equal(t, Ready, snap.State)
	assert.Empty(t, snap.Series.Labels)
	assert.Empty(t, snap.Series.Counts)
}

func TestWidget_ServerErrorBecomesError(t *testing.T) {
	w := httpWidget(t, http.StatusInternalServerError, ``)

	snap := w.Activate(context.Background())

	assert.Equal(t, Error, snap.State)
	assert.Equal(t, "Network response was not ok", snap.Message)
	assert.Equal(t, 0, snap.Series.Len())
}

func TestWidget_ObjectPayloadBecomesError(t *testing.T) {
	w := httpWidget(t, http.StatusOK, `{}`)

	snap := w.Activate(context.Background())

	assert.Equal(t, Error, snap.State)
	assert.Equal(t, "Fetched data is not an array", snap.Message)
}

func TestWidget_OtherErrorsSurfaceMessage(t *testing.T) {
	w := New(staticLoader(nil, errors.New("disk on fire")))

	snap := w.Activate(context.Background())

	assert.Equal(t, Error, snap.State)
	assert.Equal(t, "disk on fire", snap.Message)
}

func TestWidget_SingleLoadPerActivation(t *testing.T) {
	var calls int32
	w := New(loader.Func(func(ctx context.Context) ([]models.Record, error) {
		atomic.AddInt32(&calls, 1)
		return []models.Record{models.NewAlertRecord("A")}, nil
	}))

	first := w.Activate(context.Background())
	second := w.Activate(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, first, second)
}

func TestWidget_NoRetryAfterError(t *testing.T) {
	var calls int32
	w := New(loader.Func(func(ctx context.Context) ([]models.Record, error) {
		atomic.AddInt32(&calls, 1)
		return nil, &loader.FetchError{StatusCode: 503}
	}))

	w.Activate(context.Background())
	snap := w.Activate(context.Background())

	assert.Equal(t, Error, snap.State)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestWidget_DeactivateCancelsInFlightLoad(t *testing.T) {
	started := make(chan struct{})
	w := New(loader.Func(func(ctx context.Context) ([]models.Record, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}))

	done := make(chan Snapshot, 1)
	go func() { done <- w.Activate(context.Background()) }()

	<-started
	w.Deactivate()

	select {
	case snap := <-done:
		assert.Equal(t, Loading, snap.State)
		assert.Empty(t, snap.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("activation did not return after deactivate")
	}
}

func TestWidget_LateResultIsNotCommitted(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	w := New(loader.Func(func(ctx context.Context) ([]models.Record, error) {
		close(started)
		<-release
		// ignores cancellation and still returns data
		return []models.Record{models.NewAlertRecord("stale")}, nil
	}))

	done := make(chan Snapshot, 1)
	go func() { done <- w.Activate(context.Background()) }()

	<-started
	w.Deactivate()
	close(release)

	snap := <-done
	assert.Equal(t, Loading, snap.State)
	assert.Equal(t, 0, w.Snapshot().Series.Len())
}

func TestWidget_DeactivateDiscardsData(t *testing.T) {
	w := New(staticLoader([]models.Record{models.NewAlertRecord("A")}, nil))
	require.Equal(t, Ready, w.Activate(context.Background()).State)

	w.Deactivate()

	snap := w.Snapshot()
	assert.Equal(t, Loading, snap.State)
	assert.Equal(t, 0, snap.Series.Len())

	// a deactivated widget does not load again
	assert.Equal(t, Loading, w.Activate(context.Background()).State)
}

func TestWidget_InstancesAreIndependent(t *testing.T) {
	ok := New(staticLoader([]models.Record{models.NewAlertRecord("A")}, nil))
	bad := New(staticLoader(nil, &loader.ShapeError{Found: "object"}))

	assert.Equal(t, Ready, ok.Activate(context.Background()).State)
	assert.Equal(t, Error, bad.Activate(context.Background()).State)
	assert.Equal(t, Ready, ok.Snapshot().State)
}
