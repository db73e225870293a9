package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/parlami/internal/testutil"
)

func newTranslationServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		translations := map[string]string{
			"Good night":       "Buonanotte",
			"Thank you":        "Gracias",
			"I want the pizza": "Voglio la pizza",
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"responseData":{"translatedText":%q,"match":1},"responseStatus":200}`,
			translations[r.URL.Query().Get("q")])
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestNewTranslateCommand(t *testing.T) {
	cmd := newTranslateCommand()

	assert.Equal(t, "translate <text>", cmd.Use)
	for _, name := range []string{"from", "to", "save", "breakdown"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestNewTranslateCommand_RunE(t *testing.T) {
	server, calls := newTranslationServer(t)
	setupWorkspace(t, testutil.WithTranslationBaseURL(server.URL))

	out, err := execute(newTranslateCommand(), "", "Good", "night", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "🇬🇧 English → 🇮🇹 Italian\nBuonanotte\n")
	assert.NotContains(t, out, "(cached)")
	require.Contains(t, out, "Saved as ")

	out, err = execute(newTranslateCommand(), "", "Good night")
	require.NoError(t, err)
	assert.Contains(t, out, "Buonanotte\n(cached)\n")
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	out, err = execute(newTranslateCommand(), "", "Thank you", "--to", "es")
	require.NoError(t, err)
	assert.Contains(t, out, "🇪🇸 Spanish\nGracias\n")

	_, err = execute(newTranslateCommand(), "", "Thank you", "--to", "xx")
	assert.ErrorContains(t, err, "unsupported language: xx")

	_, err = execute(newTranslateCommand(), "", "   ")
	assert.Error(t, err)
}

func TestNewTranslateCommand_Breakdown(t *testing.T) {
	server, _ := newTranslationServer(t)
	setupWorkspace(t, testutil.WithTranslationBaseURL(server.URL))

	out, err := execute(newTranslateCommand(), "", "I want the pizza", "--breakdown", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Voglio la pizza\n"+
		"  i → Voglio (pronoun)\n"+
		"  want → la (verb)\n"+
		"  the → pizza (article)\n"+
		"  pizza → - (word)\n"+
		"Saved as ")

	id := savedID(t, out)

	out, err = execute(newSavedCommand(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "I want the pizza [en] → Voglio la pizza [it]  ("+id+")")

	_, err = execute(newTranslateCommand(), "", "Buonanotte", "--breakdown", "--from", "it")
	assert.ErrorContains(t, err, "--breakdown only translates from en")
}

func TestSavedCommands(t *testing.T) {
	server, _ := newTranslationServer(t)
	setupWorkspace(t, testutil.WithTranslationBaseURL(server.URL))

	out, err := execute(newSavedCommand(), "", "list")
	require.NoError(t, err)
	assert.Equal(t, "No saved translations.\n", out)

	out, err = execute(newTranslateCommand(), "", "Good night", "--save")
	require.NoError(t, err)
	id := savedID(t, out)

	out, err = execute(newSavedCommand(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Good night [en] → Buonanotte [it]  ("+id+")")

	out, err = execute(newSavedCommand(), "", "search", "BUONA")
	require.NoError(t, err)
	assert.Contains(t, out, "Buonanotte")

	out, err = execute(newSavedCommand(), "", "search", "arrivederci")
	require.NoError(t, err)
	assert.Equal(t, "No saved translations.\n", out)

	out, err = execute(newSavedCommand(), "", "delete", id)
	require.NoError(t, err)
	assert.Equal(t, "Deleted "+id+"\n", out)

	_, err = execute(newSavedCommand(), "", "delete", id)
	assert.ErrorContains(t, err, "no saved translation with id")
}

func savedID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if id, ok := strings.CutPrefix(line, "Saved as "); ok {
			return id
		}
	}
	require.FailNow(t, "no saved id in output", out)
	return ""
}
