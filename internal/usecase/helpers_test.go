package usecase

import (
	"time"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
	"github.com/runoshun/taskdeck/internal/testutil"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

// testEnv wires a workspace to in-memory remotes.
type testEnv struct {
	ws         *collection.Workspace
	tasks      *testutil.MockRemote[domain.Task, domain.TaskInput]
	categories *testutil.MockRemote[domain.Category, domain.CategoryInput]
	entries    *testutil.MockRemote[domain.ContextEntry, domain.ContextInput]
	clock      *testutil.MockClock
	logger     *testutil.MockLogger
}

func newTestEnv() *testEnv {
	env := &testEnv{
		tasks:      testutil.NewMockTaskRemote(),
		categories: testutil.NewMockCategoryRemote(),
		entries:    testutil.NewMockContextRemote(),
		clock:      &testutil.MockClock{NowTime: testNow},
		logger:     &testutil.MockLogger{},
	}
	env.ws = collection.NewWorkspace(env.tasks, env.categories, env.entries, env.logger)
	return env
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
