package signals

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleRegistration(t *testing.T) {
	h, err := New()
	require.NoError(t, err)

	_, err = New()
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	h.Close()
	// Closing twice is fine.
	h.Close()

	_, ok := <-h.Events()
	require.False(t, ok)

	h, err = New()
	require.NoError(t, err)
	h.Close()
}

func TestNoop(t *testing.T) {
	a := Noop()
	b := Noop()

	// Noop handlers don't take the registration.
	h, err := New()
	require.NoError(t, err)
	defer h.Close()

	select {
	case ev := <-a.Events():
		t.Fatalf("unexpected event %v", ev)
	default:
	}

	a.Close()
	b.Close()
	_, ok := <-a.Events()
	require.False(t, ok)
}

func TestEventString(t *testing.T) {
	require.Equal(t, "interrupted", Interrupted.String())
}
