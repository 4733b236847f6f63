package ui

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/renuIyer/loadtrack/internal/supplychain"
)

type fakeAPI struct {
	mu         sync.Mutex
	key        string
	records    []supplychain.Record
	recordsErr error
	owners     []supplychain.Owner
	submitErr  error
	submitted  []supplychain.UpdateRequest
}

func (f *fakeAPI) PublicKey() string { return f.key }

func (f *fakeAPI) FetchRecords(ctx context.Context, recordType string) ([]supplychain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records, f.recordsErr
}

func (f *fakeAPI) FetchOwners(ctx context.Context, recordID string) ([]supplychain.Owner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.owners, nil
}

func (f *fakeAPI) SubmitUpdate(ctx context.Context, req supplychain.UpdateRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, req)
	return f.submitErr
}

var _ supplychain.API = (*fakeAPI)(nil)

func load(id, owner, custodian string, reporters []string, weight string, ts int64) supplychain.Record {
	return supplychain.Record{
		RecordID:  id,
		Owner:     owner,
		Custodian: custodian,
		Properties: []supplychain.Property{{
			Name:      "weight",
			Value:     json.RawMessage(weight),
			Reporters: reporters,
			Updates:   []supplychain.PropertyUpdate{{Value: json.RawMessage(weight), Timestamp: ts}},
		}},
	}
}

// runCmd executes cmd and returns its message, failing when it blocks.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("command is nil")
	}
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("command did not complete")
	}
	return nil
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func plain(s string) string {
	return ansi.Strip(s)
}
