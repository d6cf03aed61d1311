package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gytech/flightdesk/internal/events"
	"github.com/stretchr/testify/assert"
)

func TestEventsHandler_stream(t *testing.T) {
	bus := events.NewBus()
	handler := NewEventsHandler(bus)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Request = httptest.NewRequest("GET", "/api/events", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		handler.stream(c)
		close(done)
	}()

	// Let the handler subscribe before publishing.
	time.Sleep(20 * time.Millisecond)
	bus.Outcome(false, "flight FD999 not found")
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not stop when the request was canceled")
	}

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "data: {")
	assert.Contains(t, body, `"kind":"outcome"`)
	assert.Contains(t, body, `"flight FD999 not found"`)
}
