package sheets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	sheetsadapter "github.com/ericfisherdev/dvrhub/internal/adapter/driven/sheets"
	"github.com/ericfisherdev/dvrhub/internal/domain/model"
	"github.com/ericfisherdev/dvrhub/internal/domain/port/driven"
)

// fakeSheet serves the subset of the Drive and Sheets REST APIs the store uses,
// backed by an in-memory grid.
type fakeSheet struct {
	mu       sync.Mutex
	id       string
	name     string
	titles   []string
	rows     [][]interface{}
	appended int
	readErr  bool
}

func newFakeSheet(rows ...[]interface{}) *fakeSheet {
	return &fakeSheet{
		id:     "sheet-123",
		name:   "DVR_DB",
		titles: []string{"Sheet1", "Archive"},
		rows:   rows,
	}
}

func header() []interface{} {
	return []interface{}{"Brand", "Model", "User", "Pass", "Info"}
}

func (f *fakeSheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path

	switch {
	case strings.HasSuffix(path, "/files"):
		files := []map[string]string{}
		if strings.Contains(r.URL.Query().Get("q"), "name = '"+f.name+"'") {
			files = append(files, map[string]string{"id": f.id, "name": f.name})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"files": files})

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("valueInputOption") != "RAW" {
			http.Error(w, `{"error":{"code":400,"message":"valueInputOption"}}`, http.StatusBadRequest)
			return
		}
		f.rows = append(f.rows, body.Values...)
		f.appended += len(body.Values)
		_ = json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": f.id})

	case strings.Contains(path, "/values/"):
		if f.readErr {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"caller does not have permission"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"range":          "Sheet1!A1:E100",
			"majorDimension": "ROWS",
			"values":         f.rows,
		})

	case strings.HasSuffix(path, "/v4/spreadsheets/"+f.id):
		sheets := make([]map[string]any, 0, len(f.titles))
		for i, title := range f.titles {
			sheets = append(sheets, map[string]any{"properties": map[string]any{"title": title, "index": i}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": f.id, "sheets": sheets})

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
	}
}

func connect(t *testing.T, fake *fakeSheet, cfg sheetsadapter.Config) (*sheetsadapter.Store, error) {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	return sheetsadapter.ConnectWithOptions(context.Background(), cfg,
		option.WithHTTPClient(server.Client()),
		option.WithEndpoint(server.URL+"/"),
	)
}

func TestConnect_ResolvesSpreadsheetByName(t *testing.T) {
	fake := newFakeSheet(header())

	store, err := connect(t, fake, sheetsadapter.Config{SpreadsheetName: "DVR_DB"})
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", store.SpreadsheetID())
	assert.Equal(t, "Sheet1", store.Worksheet(), "first worksheet is used by default")
}

func TestConnect_ExplicitWorksheet(t *testing.T) {
	fake := newFakeSheet(header())

	store, err := connect(t, fake, sheetsadapter.Config{SpreadsheetID: "sheet-123", Worksheet: "Archive"})
	require.NoError(t, err)
	assert.Equal(t, "Archive", store.Worksheet())
}

func TestConnect_SpreadsheetNotFound(t *testing.T) {
	fake := newFakeSheet(header())

	_, err := connect(t, fake, sheetsadapter.Config{SpreadsheetName: "Missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrConnection)
	assert.Contains(t, err.Error(), `"Missing"`)
}

func TestConnect_UnknownWorksheet(t *testing.T) {
	fake := newFakeSheet(header())

	_, err := connect(t, fake, sheetsadapter.Config{SpreadsheetID: "sheet-123", Worksheet: "Nope"})
	assert.ErrorIs(t, err, driven.ErrConnection)
}

func TestConnect_NoNameOrID(t *testing.T) {
	fake := newFakeSheet(header())

	_, err := connect(t, fake, sheetsadapter.Config{})
	assert.ErrorIs(t, err, driven.ErrConnection)
}

func TestConnect_InvalidServiceAccountKey(t *testing.T) {
	_, err := sheetsadapter.Connect(context.Background(), sheetsadapter.Config{
		SpreadsheetName: "DVR_DB",
		CredentialsJSON: []byte(`{"type": "service_account"`),
	})
	assert.ErrorIs(t, err, driven.ErrConnection)
}

func TestStore_LoadAll(t *testing.T) {
	fake := newFakeSheet(
		header(),
		[]interface{}{"Hikvision", "DS-7204", "admin", "12345", "Hold reset 10s"},
		[]interface{}{"Dahua", "XVR5104", "admin"},
	)

	store, err := connect(t, fake, sheetsadapter.Config{SpreadsheetName: "DVR_DB"})
	require.NoError(t, err)

	records, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.Record{Brand: "Hikvision", Model: "DS-7204", User: "admin", Pass: "12345", Info: "Hold reset 10s"}, records[0])
	assert.Equal(t, model.Record{Brand: "Dahua", Model: "XVR5104", User: "admin"}, records[1], "missing trailing cells read as empty")
}

func TestStore_LoadAllReadError(t *testing.T) {
	fake := newFakeSheet(header())

	store, err := connect(t, fake, sheetsadapter.Config{SpreadsheetName: "DVR_DB"})
	require.NoError(t, err)

	fake.mu.Lock()
	fake.readErr = true
	fake.mu.Unlock()

	_, err = store.LoadAll(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, driven.ErrConnection)
}

func TestStore_AppendThenLoadAll(t *testing.T) {
	fake := newFakeSheet(header())

	store, err := connect(t, fake, sheetsadapter.Config{SpreadsheetName: "DVR_DB"})
	require.NoError(t, err)

	rec := model.Record{Brand: "Dahua", Model: "XVR5104", User: "admin", Pass: "admin", Info: "Factory default"}
	require.NoError(t, store.Append(context.Background(), rec))
	assert.Equal(t, 1, fake.appended)

	records, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestStore_AppendKeepsFormulaTextLiteral(t *testing.T) {
	fake := newFakeSheet(header())

	store, err := connect(t, fake, sheetsadapter.Config{SpreadsheetName: "DVR_DB"})
	require.NoError(t, err)

	rec := model.Record{Brand: "=HYPERLINK(\"x\")", Model: "M1"}
	require.NoError(t, store.Append(context.Background(), rec))

	records, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Brand, records[0].Brand)
}
