package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/headline-quoter/internal/domain"
)

func TestStageError_Error(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *StageError
		want string
	}{
		{
			name: "run level",
			err:  &StageError{Stage: StageFetch, Err: cause},
			want: "fetch failed: boom",
		},
		{
			name: "article level",
			err:  &StageError{Stage: StagePublish, Title: "Bread", Err: cause},
			want: `publish failed for "Bread": boom`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

func TestStageOf(t *testing.T) {
	err := &StageError{Stage: StageMatch, Err: domain.ErrEmptyCorpus}

	stage, ok := StageOf(errors.Join(err))
	require.True(t, ok)
	assert.Equal(t, StageMatch, stage)

	_, ok = StageOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestRunStage(t *testing.T) {
	got, err := runStage(context.Background(), StageFormat, "t", func(context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	_, err = runStage(context.Background(), StageFormat, "t", func(context.Context) (string, error) {
		return "", domain.NewValidationError("text", "empty")
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	stage, _ := StageOf(err)
	assert.Equal(t, StageFormat, stage)
}
