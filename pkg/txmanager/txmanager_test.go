package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(&pq.Error{Code: "40001"}))
	assert.True(t, Retryable(&pq.Error{Code: "40P01"}))
	assert.True(t, Retryable(fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})))

	assert.False(t, Retryable(nil))
	assert.False(t, Retryable(errors.New("boom")))
	assert.False(t, Retryable(&pq.Error{Code: "23505"}))
}

func TestRetrySerializable_RetriesUntilSuccess(t *testing.T) {
	attempts := 0
	err := RetrySerializable(func() error {
		attempts++
		if attempts < 3 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetrySerializable_GivesUpAfterBudget(t *testing.T) {
	attempts := 0
	serializationFailure := &pq.Error{Code: "40001"}
	err := RetrySerializable(func() error {
		attempts++
		return serializationFailure
	})
	assert.ErrorIs(t, err, serializationFailure)
	assert.Equal(t, SerializationRetries, attempts)
}

func TestRetrySerializable_NonRetryableFailsFast(t *testing.T) {
	attempts := 0
	boom := errors.New("boom")
	err := RetrySerializable(func() error {
		attempts++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}
