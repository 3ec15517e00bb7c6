package caseform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/emerginginv/trace-aid-sub006/internal/api"
)

func testCase() api.Case {
	return api.Case{
		ID:      "case-1",
		Number:  "2026-117",
		Subject: "Warehouse inventory loss",
		Status:  api.CaseStatusOpen,
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestSetCaseWithoutDraftUsesCaseFields(t *testing.T) {
	t.Parallel()

	form := New()
	form.SetCase(testCase(), api.CaseDraft{}, false)

	require.True(t, form.Loaded())
	require.Equal(t, "case-1", form.CaseID())

	draft := form.Draft()
	require.Equal(t, "Warehouse inventory loss", draft.Subject)
	require.Equal(t, api.CaseStatusOpen, draft.Status)
	require.Empty(t, draft.Notes)
	require.Empty(t, draft.Tags)
}

func TestSetCaseWithDraftResumesEdit(t *testing.T) {
	t.Parallel()

	stored := api.CaseDraft{
		CaseID:  "case-1",
		Subject: "Warehouse inventory loss (amended)",
		Status:  api.CaseStatusPending,
		Notes:   "Walkthrough done. Waiting on camera footage.",
		Tags:    []string{"theft", "cameras"},
	}

	form := New()
	form.SetCase(testCase(), stored, true)

	require.Equal(t, stored, form.Draft())
}

func TestDraftIsStableAcrossCalls(t *testing.T) {
	t.Parallel()

	form := New()
	form.SetCase(testCase(), api.CaseDraft{}, false)

	require.Equal(t, form.Draft(), form.Draft())
}

func TestTypingEditsNotesByDefault(t *testing.T) {
	t.Parallel()

	form := New()
	cs := testCase()
	form.SetCase(cs, api.CaseDraft{}, false)

	form.Update(keyPress('h'))
	form.Update(keyPress('i'))

	draft := form.Draft()
	require.Equal(t, "hi", draft.Notes)
	require.Equal(t, cs.Subject, draft.Subject)
}

func TestTabMovesFocusToSubject(t *testing.T) {
	t.Parallel()

	form := New()
	cs := testCase()
	cs.Subject = ""
	form.SetCase(cs, api.CaseDraft{}, false)

	form.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	form.Update(keyPress('x'))

	draft := form.Draft()
	require.Equal(t, "x", draft.Subject)
	require.Empty(t, draft.Notes)
}

func TestCtrlTCyclesStatus(t *testing.T) {
	t.Parallel()

	form := New()
	form.SetCase(testCase(), api.CaseDraft{}, false)

	ctrlT := tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}

	form.Update(ctrlT)
	require.Equal(t, api.CaseStatusPending, form.Draft().Status)

	form.Update(ctrlT)
	require.Equal(t, api.CaseStatusClosed, form.Draft().Status)

	form.Update(ctrlT)
	require.Equal(t, api.CaseStatusArchived, form.Draft().Status)

	form.Update(ctrlT)
	require.Equal(t, api.CaseStatusOpen, form.Draft().Status)
}

func TestViewShowsCaseContent(t *testing.T) {
	t.Parallel()

	form := New()
	form.SetCase(testCase(), api.CaseDraft{}, false)
	form.SetSize(80, 24)

	view := ansi.Strip(form.View())
	require.Contains(t, view, "Case 2026-117")
	require.Contains(t, view, "OPEN")
	require.Contains(t, view, "Warehouse inventory loss")
}

func TestViewBeforeLoadShowsHint(t *testing.T) {
	t.Parallel()

	form := New()
	form.SetSize(80, 24)

	require.Contains(t, ansi.Strip(form.View()), "Select a case")
}

func TestUpdateIgnoredBeforeLoad(t *testing.T) {
	t.Parallel()

	form := New()
	_, cmd := form.Update(keyPress('a'))

	require.Nil(t, cmd)
	require.Empty(t, form.Draft().Notes)
}
