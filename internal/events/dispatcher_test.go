package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryDispatcher(t *testing.T) {
	t.Run("delivers to subscribers of the event type", func(t *testing.T) {
		d := NewInMemoryDispatcher()

		var got []Event
		d.Subscribe(EventCourseRegistration, func(_ context.Context, event Event) error {
			got = append(got, event)
			return nil
		})
		d.Subscribe(EventCourseCreated, func(_ context.Context, _ Event) error {
			t.Fatal("wrong event type delivered")
			return nil
		})

		err := d.Publish(context.Background(), Event{Type: EventCourseRegistration, CourseID: "C1"})
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "C1", got[0].CourseID)
	})

	t.Run("a failing handler does not block the others", func(t *testing.T) {
		d := NewInMemoryDispatcher()

		d.Subscribe(EventLectureAdded, func(_ context.Context, _ Event) error {
			return errors.New("handler failed")
		})
		called := false
		d.Subscribe(EventLectureAdded, func(_ context.Context, _ Event) error {
			called = true
			return nil
		})

		err := d.Publish(context.Background(), Event{Type: EventLectureAdded})
		assert.NoError(t, err)
		assert.True(t, called)
	})
}
