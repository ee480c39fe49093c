package service

import (
	"context"
	"testing"

	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/repository/memory"
	"ankibridge-be/internal/staging"
	"ankibridge-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func newBatchFixture(t *testing.T) (IBatchService, *fakeStore, *fakeGenerator, *fakePublisher) {
	t.Helper()
	store := newFakeStore()
	generator := &fakeGenerator{failWords: map[string]bool{}}
	publisher := &fakePublisher{}
	instructions, settings := newTestFileRepos(t)

	svc := NewBatchService(store, generator, memory.NewStagingRepository(), instructions, settings, publisher, nopLogger{})
	return svc, store, generator, publisher
}

func stageRequest(words ...string) *dto.StageBatchRequest {
	return &dto.StageBatchRequest{
		Words:     words,
		DeckName:  "Vocab",
		ModelName: "Basic",
		Language:  "English",
	}
}

func TestStageBatch(t *testing.T) {
	svc, store, generator, _ := newBatchFixture(t)
	store.duplicates["banana"] = true
	generator.failWords["broken"] = true

	res, err := svc.Stage(context.Background(), stageRequest("apple", "banana", "broken"))
	assert.NoError(t, err)
	assert.NotEmpty(t, res.SessionID)
	assert.Len(t, res.Items, 3)

	assert.Equal(t, staging.StatusReady, res.Items[0].Status)
	assert.True(t, res.Items[0].Checked)
	assert.Equal(t, staging.StatusDuplicate, res.Items[1].Status)
	assert.False(t, res.Items[1].Checked)
	assert.Equal(t, staging.StatusError, res.Items[2].Status)

	// Tags carry language, provenance and the user's defaults.
	assert.Equal(t, []string{"english", "llm-generated", "batch-import", "auto"}, res.Items[0].Note.Tags)

	// Staging never writes to the store.
	assert.Empty(t, store.added)
}

func TestStageSplitsMultiLineInput(t *testing.T) {
	svc, _, generator, _ := newBatchFixture(t)

	res, err := svc.Stage(context.Background(), stageRequest("apple\nbanana\n\n", "cherry"))
	assert.NoError(t, err)
	assert.Len(t, res.Items, 3)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, generator.calls)
}

func TestStageRejectsBlankInput(t *testing.T) {
	svc, _, _, _ := newBatchFixture(t)

	_, err := svc.Stage(context.Background(), stageRequest("   ", "\n"))
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestSessionNotFound(t *testing.T) {
	svc, _, _, _ := newBatchFixture(t)

	_, err := svc.Session("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.SetChecked("nope", 0, true)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Submit(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSetCheckedAndSelectAll(t *testing.T) {
	svc, _, _, _ := newBatchFixture(t)
	staged, err := svc.Stage(context.Background(), stageRequest("apple", "banana"))
	assert.NoError(t, err)

	res, err := svc.SetChecked(staged.SessionID, 0, false)
	assert.NoError(t, err)
	assert.False(t, res.Items[0].Checked)
	assert.True(t, res.Items[1].Checked)

	res, err = svc.SelectAll(staged.SessionID, false)
	assert.NoError(t, err)
	for _, item := range res.Items {
		assert.False(t, item.Checked)
	}

	_, err = svc.SetChecked(staged.SessionID, 5, true)
	assert.ErrorIs(t, err, staging.ErrIndexOutOfRange)
}

func TestForceIncludeDuplicateThenSubmit(t *testing.T) {
	svc, store, _, _ := newBatchFixture(t)
	store.duplicates["banana"] = true

	staged, err := svc.Stage(context.Background(), stageRequest("banana"))
	assert.NoError(t, err)

	res, err := svc.ForceInclude(staged.SessionID, 0)
	assert.NoError(t, err)
	assert.True(t, res.Applied)
	assert.True(t, res.Items[0].Checked)

	submitted, err := svc.Submit(context.Background(), staged.SessionID)
	assert.NoError(t, err)
	assert.True(t, submitted.Completed)
	assert.Len(t, store.added, 1)
	assert.NotNil(t, store.added[0].Options)
	assert.True(t, store.added[0].Options.AllowDuplicate)
}

func TestEditFieldsRoundTrip(t *testing.T) {
	svc, _, _, _ := newBatchFixture(t)
	staged, err := svc.Stage(context.Background(), stageRequest("apple"))
	assert.NoError(t, err)

	res, err := svc.EditFields(staged.SessionID, 0, &dto.EditFieldsRequest{
		Fields: map[string]string{"Back": "hand edited"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "hand edited", res.Items[0].Fields["Back"])
	assert.Equal(t, "apple", res.Items[0].Fields["Front"])
}

func TestSubmitFullSuccessDiscardsSession(t *testing.T) {
	svc, store, _, publisher := newBatchFixture(t)
	staged, err := svc.Stage(context.Background(), stageRequest("apple", "banana"))
	assert.NoError(t, err)

	res, err := svc.Submit(context.Background(), staged.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, staging.Summary{Total: 2, Successful: 2, Failed: 0}, res.Summary)
	assert.True(t, res.Completed)
	assert.Empty(t, res.Items)
	assert.Len(t, store.added, 2)

	// Session is gone once everything succeeded.
	_, err = svc.Session(staged.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.Len(t, publisher.published, 1)
	assert.Equal(t, events.TypeBatchSubmitted, publisher.published[0].EventType())
}

func TestSubmitPartialFailureKeepsSession(t *testing.T) {
	svc, store, _, _ := newBatchFixture(t)
	store.rejectAdd["banana"] = true

	staged, err := svc.Stage(context.Background(), stageRequest("apple", "banana"))
	assert.NoError(t, err)

	res, err := svc.Submit(context.Background(), staged.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, staging.Summary{Total: 2, Successful: 1, Failed: 1}, res.Summary)
	assert.False(t, res.Completed)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, "banana", res.Items[0].Word)
	assert.NotEmpty(t, res.Items[0].Error)

	// The failed item is still there for a retry.
	kept, err := svc.Session(staged.SessionID)
	assert.NoError(t, err)
	assert.Len(t, kept.Items, 1)
}

func TestSubmitStoreOutageLeavesSessionUntouched(t *testing.T) {
	svc, store, _, _ := newBatchFixture(t)
	staged, err := svc.Stage(context.Background(), stageRequest("apple", "banana"))
	assert.NoError(t, err)

	store.err = assert.AnError
	_, err = svc.Submit(context.Background(), staged.SessionID)
	assert.Error(t, err)

	// Nothing was reconciled; both items remain staged and checked.
	store.err = nil
	kept, err := svc.Session(staged.SessionID)
	assert.NoError(t, err)
	assert.Len(t, kept.Items, 2)
	for _, item := range kept.Items {
		assert.True(t, item.Checked)
		assert.Empty(t, item.Error)
	}
}

func TestSubmitNothingChecked(t *testing.T) {
	svc, _, _, _ := newBatchFixture(t)
	staged, err := svc.Stage(context.Background(), stageRequest("apple"))
	assert.NoError(t, err)

	_, err = svc.SelectAll(staged.SessionID, false)
	assert.NoError(t, err)

	_, err = svc.Submit(context.Background(), staged.SessionID)
	assert.ErrorIs(t, err, staging.ErrEmptySelection)
}

func TestStageUsesModelInstructions(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	instructions, settings := newTestFileRepos(t)
	assert.NoError(t, instructions.Set("Basic", "Keep it terse."))

	var seen string
	generator := &recordingGenerator{onCall: func(req string) { seen = req }}
	svc := NewBatchService(store, generator, memory.NewStagingRepository(), instructions, settings, publisher, nopLogger{})

	_, err := svc.Stage(context.Background(), stageRequest("apple"))
	assert.NoError(t, err)
	assert.Equal(t, "Keep it terse.", seen)
}
