package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should deliver typed payload to subscribers in subscription order", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var received []string
		SubscribeTyped(bus, TemplateDeletedType, func(e EventT[TemplateDeleted]) error {
			received = append(received, "first:"+e.Data.FilePath)
			return nil
		})
		SubscribeTyped(bus, TemplateDeletedType, func(e EventT[TemplateDeleted]) error {
			received = append(received, "second:"+e.Data.FilePath)
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), TemplateDeletedType, TemplateDeleted{FilePath: "template_1.docx"}))

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"first:template_1.docx", "second:template_1.docx"}, received)
	})

	t.Run("should skip typed handler on payload type mismatch", func(t *testing.T) {
		// given
		bus := NewEventBus()
		called := false
		SubscribeTyped(bus, TemplateDeletedType, func(e EventT[TemplateDeleted]) error {
			called = true
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), TemplateDeletedType, TemplateDefaultChanged{}))

		// then
		assert.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("should collect handler errors and recover panics", func(t *testing.T) {
		// given
		bus := NewEventBus()
		bus.Subscribe(TemplateDefaultChangedType, func(e Event) error { return errors.New("boom") })
		bus.Subscribe(TemplateDefaultChangedType, func(e Event) error { panic("bad handler") })

		// when
		err := bus.Publish(NewEvent(context.Background(), TemplateDefaultChangedType, TemplateDefaultChanged{}))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 handler(s) failed")
	})

	t.Run("should not call unsubscribed handler", func(t *testing.T) {
		// given
		bus := NewEventBus()
		called := false
		unsubscribe := bus.Subscribe(TemplateDefaultChangedType, func(e Event) error {
			called = true
			return nil
		})
		unsubscribe()

		// when
		err := bus.Publish(NewEvent(context.Background(), TemplateDefaultChangedType, TemplateDefaultChanged{}))

		// then
		assert.NoError(t, err)
		assert.False(t, called)
	})
}
