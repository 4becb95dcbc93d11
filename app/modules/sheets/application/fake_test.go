package sheetsservice

import (
	"context"
	"errors"
	"sync"
)

// MemorySheetClient is an in-memory spreadsheet keyed by spreadsheet id. Ranges are
// ignored: Clear wipes the whole sheet and Write replaces it from A1.
type MemorySheetClient struct {
	mu     sync.Mutex
	sheets map[string][][]any
	trace  []string

	ReadErr  error
	WriteErr error
}

func NewMemorySheetClient() *MemorySheetClient {
	return &MemorySheetClient{sheets: map[string][][]any{}, trace: []string{}}
}

func (m *MemorySheetClient) Trace() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.trace))
	copy(out, m.trace)
	return out
}

func (m *MemorySheetClient) Put(spreadsheetID string, rows [][]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[spreadsheetID] = rows
}

func (m *MemorySheetClient) Rows(spreadsheetID string) [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sheets[spreadsheetID]
}

func (m *MemorySheetClient) Clear(_ context.Context, spreadsheetID, rng string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trace = append(m.trace, "Clear "+spreadsheetID+" "+rng)
	delete(m.sheets, spreadsheetID)
	return nil
}

func (m *MemorySheetClient) Write(_ context.Context, spreadsheetID, rng string, rows [][]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trace = append(m.trace, "Write "+spreadsheetID+" "+rng)
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.sheets[spreadsheetID] = rows
	return nil
}

func (m *MemorySheetClient) Read(_ context.Context, spreadsheetID, rng string) ([][]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trace = append(m.trace, "Read "+spreadsheetID+" "+rng)
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	rows, ok := m.sheets[spreadsheetID]
	if !ok {
		return nil, errors.New("spreadsheet not found")
	}
	return rows, nil
}

var _ SheetClient = (*MemorySheetClient)(nil)
