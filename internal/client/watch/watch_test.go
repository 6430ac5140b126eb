package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishAndCancel(t *testing.T) {
	var h Hub[int]
	var got []string

	cancelA := h.Subscribe(func(v int) { got = append(got, "a") })
	h.Subscribe(func(v int) { got = append(got, "b") })

	h.Publish(1)
	assert.Equal(t, []string{"a", "b"}, got)

	cancelA()
	cancelA()
	h.Publish(2)
	assert.Equal(t, []string{"a", "b", "b"}, got)
}

func TestHub_ZeroValueWithoutSubscribers(t *testing.T) {
	var h Hub[string]
	assert.NotPanics(t, func() { h.Publish("x") })
}
