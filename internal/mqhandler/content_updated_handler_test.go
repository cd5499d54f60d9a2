package mqhandler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingPurger struct {
	calls int
	err   error
}

func (c *countingPurger) Purge(context.Context) error {
	c.calls++
	return c.err
}

func TestHandleContentUpdated_Purges(t *testing.T) {
	p := &countingPurger{}
	h := NewContentUpdatedHandler(p, zap.NewNop())

	err := h.HandleContentUpdated(context.Background(), json.RawMessage(`{"kinds":["projects"],"source":"seed"}`))
	assert.NoError(t, err)
	assert.Equal(t, 1, p.calls)
}

func TestHandleContentUpdated_BadPayload(t *testing.T) {
	p := &countingPurger{}
	h := NewContentUpdatedHandler(p, zap.NewNop())

	var syntaxErr *json.SyntaxError
	err := h.HandleContentUpdated(context.Background(), json.RawMessage(`not json`))
	assert.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 0, p.calls)
}

func TestHandleContentUpdated_PurgeError(t *testing.T) {
	p := &countingPurger{err: errors.New("redis down")}
	h := NewContentUpdatedHandler(p, zap.NewNop())

	err := h.HandleContentUpdated(context.Background(), json.RawMessage(`{}`))
	assert.EqualError(t, err, "redis down")
}
