package staging

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ankibridge-be/pkg/ankiconnect"

	"github.com/stretchr/testify/assert"
)

func fieldsFor(word string) map[string]string {
	return map[string]string{"Word": word, "Back": "definition of " + word}
}

func alwaysGenerate(ctx context.Context, word string) (map[string]string, error) {
	return fieldsFor(word), nil
}

func neverDuplicate(ctx context.Context, note *ankiconnect.Note) (bool, error) {
	return false, nil
}

func testContext() Context {
	return Context{
		Deck:     "Vocab",
		Model:    "Basic",
		Language: "english",
		Tags:     []string{"english", "llm-generated", "batch-import"},
	}
}

func TestSplitWords(t *testing.T) {
	words := SplitWords("apple\n  banana  \n\n\ncherry\n")
	assert.Equal(t, []string{"apple", "banana", "cherry"}, words)

	assert.Nil(t, SplitWords("   \n  \n"))
}

func TestStagePreservesOrderAndLength(t *testing.T) {
	e := NewEngine(testContext())
	words := []string{"apple", "banana", "cherry"}

	items := e.Stage(context.Background(), words, alwaysGenerate, neverDuplicate)

	assert.Len(t, items, len(words))
	for i, item := range items {
		assert.Equal(t, words[i], item.Word)
		assert.Equal(t, StatusReady, item.Status)
		assert.True(t, item.Checked)
		assert.NotNil(t, item.Note)
		assert.Equal(t, "Vocab", item.Note.DeckName)
		assert.Equal(t, "Basic", item.Note.ModelName)
	}
}

func TestStageGenerationFailureDoesNotAbortSiblings(t *testing.T) {
	e := NewEngine(testContext())

	generate := func(ctx context.Context, word string) (map[string]string, error) {
		if word == "banana" {
			return map[string]string{"Word": "banana"}, errors.New("model timeout")
		}
		return fieldsFor(word), nil
	}

	items := e.Stage(context.Background(), []string{"apple", "banana", "cherry"}, generate, neverDuplicate)

	assert.Equal(t, StatusReady, items[0].Status)
	assert.Equal(t, StatusError, items[1].Status)
	assert.Equal(t, "model timeout", items[1].Error)
	assert.False(t, items[1].Checked)
	assert.Nil(t, items[1].Note)
	// Partial output is kept for inspection.
	assert.Equal(t, "banana", items[1].Fields["Word"])
	assert.Equal(t, StatusReady, items[2].Status)
}

func TestStageMarksDuplicatesUnchecked(t *testing.T) {
	e := NewEngine(testContext())

	isDuplicate := func(ctx context.Context, note *ankiconnect.Note) (bool, error) {
		return note.Fields["Word"] == "banana", nil
	}

	items := e.Stage(context.Background(), []string{"apple", "banana"}, alwaysGenerate, isDuplicate)

	assert.Equal(t, StatusReady, items[0].Status)
	assert.True(t, items[0].Checked)

	assert.Equal(t, StatusDuplicate, items[1].Status)
	assert.False(t, items[1].Checked)
	// Note stays built so a later force include needs no regeneration.
	assert.NotNil(t, items[1].Note)
}

func TestStageDuplicateCheckFailure(t *testing.T) {
	e := NewEngine(testContext())

	isDuplicate := func(ctx context.Context, note *ankiconnect.Note) (bool, error) {
		return false, errors.New("store hiccup")
	}

	items := e.Stage(context.Background(), []string{"apple"}, alwaysGenerate, isDuplicate)

	assert.Equal(t, StatusError, items[0].Status)
	assert.Equal(t, "store hiccup", items[0].Error)
	assert.Nil(t, items[0].Note)
	assert.NotEmpty(t, items[0].Fields)
}

func TestSetCheckedBounds(t *testing.T) {
	e := NewEngine(testContext())
	e.Stage(context.Background(), []string{"apple"}, alwaysGenerate, neverDuplicate)

	assert.NoError(t, e.SetChecked(0, false))
	assert.False(t, e.Items()[0].Checked)
	// Status is untouched by check toggles.
	assert.Equal(t, StatusReady, e.Items()[0].Status)

	assert.ErrorIs(t, e.SetChecked(-1, true), ErrIndexOutOfRange)
	assert.ErrorIs(t, e.SetChecked(1, true), ErrIndexOutOfRange)
}

func TestSelectAll(t *testing.T) {
	e := NewEngine(testContext())
	e.Stage(context.Background(), []string{"apple", "banana", "cherry"}, alwaysGenerate, neverDuplicate)

	e.SelectAll(false)
	for _, item := range e.Items() {
		assert.False(t, item.Checked)
	}

	e.SelectAll(true)
	for _, item := range e.Items() {
		assert.True(t, item.Checked)
	}
}

func TestForceIncludeDuplicate(t *testing.T) {
	e := NewEngine(testContext())
	isDuplicate := func(ctx context.Context, note *ankiconnect.Note) (bool, error) { return true, nil }
	e.Stage(context.Background(), []string{"apple"}, alwaysGenerate, isDuplicate)

	applied, err := e.ForceInclude(0)
	assert.NoError(t, err)
	assert.True(t, applied)

	item := e.Items()[0]
	assert.Equal(t, StatusReady, item.Status)
	assert.True(t, item.Checked)
	assert.True(t, item.ForceDuplicate)
	assert.NotNil(t, item.Note.Options)
	assert.True(t, item.Note.Options.AllowDuplicate)
}

func TestForceIncludeNoopWithoutFields(t *testing.T) {
	e := NewEngine(testContext())
	generate := func(ctx context.Context, word string) (map[string]string, error) {
		return nil, errors.New("hard failure")
	}
	e.Stage(context.Background(), []string{"apple"}, generate, neverDuplicate)

	before := e.Items()[0]
	applied, err := e.ForceInclude(0)
	assert.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, before, e.Items()[0])
}

func TestForceIncludeAfterGenerationErrorWithPartialFields(t *testing.T) {
	e := NewEngine(testContext())
	generate := func(ctx context.Context, word string) (map[string]string, error) {
		return map[string]string{"Word": word}, errors.New("truncated response")
	}
	e.Stage(context.Background(), []string{"apple"}, generate, neverDuplicate)

	applied, err := e.ForceInclude(0)
	assert.NoError(t, err)
	assert.True(t, applied)

	item := e.Items()[0]
	assert.Equal(t, StatusReady, item.Status)
	assert.Empty(t, item.Error)
	assert.NotNil(t, item.Note)
	assert.True(t, item.Note.Options.AllowDuplicate)
}

func TestEditFieldsMergesByDefault(t *testing.T) {
	e := NewEngine(testContext())
	e.Stage(context.Background(), []string{"apple"}, alwaysGenerate, neverDuplicate)

	err := e.EditFields(0, map[string]string{"Back": "a round fruit"}, false)
	assert.NoError(t, err)

	item := e.Items()[0]
	assert.Equal(t, "apple", item.Fields["Word"])
	assert.Equal(t, "a round fruit", item.Fields["Back"])
	assert.Equal(t, item.Fields, item.Note.Fields)
}

func TestEditFieldsReplace(t *testing.T) {
	e := NewEngine(testContext())
	e.Stage(context.Background(), []string{"apple"}, alwaysGenerate, neverDuplicate)

	err := e.EditFields(0, map[string]string{"Back": "rewritten"}, true)
	assert.NoError(t, err)

	item := e.Items()[0]
	assert.Equal(t, map[string]string{"Back": "rewritten"}, item.Fields)
}

func TestEditFieldsRecoversErrorItem(t *testing.T) {
	e := NewEngine(testContext())
	generate := func(ctx context.Context, word string) (map[string]string, error) {
		return nil, errors.New("model unavailable")
	}
	e.Stage(context.Background(), []string{"apple"}, generate, neverDuplicate)

	err := e.EditFields(0, map[string]string{"Word": "apple", "Back": "manual entry"}, false)
	assert.NoError(t, err)

	item := e.Items()[0]
	assert.Equal(t, StatusReady, item.Status)
	assert.True(t, item.Checked)
	assert.Empty(t, item.Error)
	assert.NotNil(t, item.Note)
}

func TestEditFieldsPreservesForceDuplicate(t *testing.T) {
	e := NewEngine(testContext())
	isDuplicate := func(ctx context.Context, note *ankiconnect.Note) (bool, error) { return true, nil }
	e.Stage(context.Background(), []string{"apple"}, alwaysGenerate, isDuplicate)

	_, err := e.ForceInclude(0)
	assert.NoError(t, err)

	err = e.EditFields(0, map[string]string{"Back": "edited"}, false)
	assert.NoError(t, err)

	item := e.Items()[0]
	assert.True(t, item.ForceDuplicate)
	assert.NotNil(t, item.Note.Options)
	assert.True(t, item.Note.Options.AllowDuplicate)
}

func TestBuildSubmissionFiltersUncheckedAndNoteless(t *testing.T) {
	e := NewEngine(testContext())
	generate := func(ctx context.Context, word string) (map[string]string, error) {
		if word == "broken" {
			return nil, errors.New("boom")
		}
		return fieldsFor(word), nil
	}
	e.Stage(context.Background(), []string{"apple", "banana", "broken"}, generate, neverDuplicate)
	assert.NoError(t, e.SetChecked(1, false))

	subs, err := e.BuildSubmission()
	assert.NoError(t, err)
	assert.Len(t, subs, 1)
	assert.Equal(t, "apple", subs[0].Word)
}

func TestBuildSubmissionEmpty(t *testing.T) {
	e := NewEngine(testContext())
	e.Stage(context.Background(), []string{"apple"}, alwaysGenerate, neverDuplicate)
	e.SelectAll(false)

	_, err := e.BuildSubmission()
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestApplyResultsRemovesSucceededKeepsFailed(t *testing.T) {
	e := NewEngine(testContext())
	e.Stage(context.Background(), []string{"apple", "banana", "cherry"}, alwaysGenerate, neverDuplicate)

	subs, err := e.BuildSubmission()
	assert.NoError(t, err)
	assert.Len(t, subs, 3)

	summary := e.ApplyResults(subs, []ItemResult{
		{Success: true},
		{Success: false, Error: "rejected"},
		{Success: true},
	})

	assert.Equal(t, Summary{Total: 3, Successful: 2, Failed: 1}, summary)

	items := e.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "banana", items[0].Word)
	assert.Equal(t, "rejected", items[0].Error)
	// Checked state survives so the user can retry immediately.
	assert.True(t, items[0].Checked)
}

func TestApplyResultsKeepsUnsubmittedItems(t *testing.T) {
	e := NewEngine(testContext())
	e.Stage(context.Background(), []string{"apple", "banana"}, alwaysGenerate, neverDuplicate)
	assert.NoError(t, e.SetChecked(1, false))

	subs, err := e.BuildSubmission()
	assert.NoError(t, err)

	summary := e.ApplyResults(subs, []ItemResult{{Success: true}})
	assert.Equal(t, Summary{Total: 1, Successful: 1}, summary)

	items := e.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "banana", items[0].Word)
	assert.False(t, items[0].Checked)
}

func TestStageSequentialCallOrder(t *testing.T) {
	e := NewEngine(testContext())

	var calls []string
	generate := func(ctx context.Context, word string) (map[string]string, error) {
		calls = append(calls, word)
		return fieldsFor(word), nil
	}

	words := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		words = append(words, fmt.Sprintf("word%02d", i))
	}
	e.Stage(context.Background(), words, generate, neverDuplicate)

	assert.Equal(t, words, calls)
}
