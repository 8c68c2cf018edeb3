package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturation-api/pkg/retry"
)

var (
	errTransient = errors.New("transitorio")
	errFinal     = errors.New("definitivo")
)

func fastPolicy(n int) retry.Policy {
	return retry.Policy{MaxRetries: n, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func TestDo_ReintentaHastaExito(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastPolicy(3), isTransient, func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_AgotaIntentos(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastPolicy(2), isTransient, func() error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls) // intento inicial + 2 reintentos
}

func TestDo_ErrorNoReintentable(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastPolicy(5), isTransient, func() error {
		calls++
		return errFinal
	})
	assert.ErrorIs(t, err, errFinal)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := retry.Do(ctx, fastPolicy(5), isTransient, func() error {
		calls++
		return errTransient
	})
	assert.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}
