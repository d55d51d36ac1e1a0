package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskdeck/internal/domain"
)

func TestShowTask_Execute(t *testing.T) {
	env := newTestEnv()
	seedTask(env)
	uc := NewShowTask(env.ws)

	out, err := uc.Execute(context.Background(), ShowTaskInput{ID: "t1"})

	require.NoError(t, err)
	assert.Equal(t, "Original", out.Task.Title)
	assert.Equal(t, "Work", out.CategoryName)
}

func TestShowTask_Execute_NotFound(t *testing.T) {
	env := newTestEnv()
	uc := NewShowTask(env.ws)

	_, err := uc.Execute(context.Background(), ShowTaskInput{ID: "missing"})

	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}
