// Package sheets implements the RecordStore port on a Google Sheets worksheet.
// The first row of the worksheet is the header; each following row is one record.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ericfisherdev/dvrhub/internal/domain/model"
	"github.com/ericfisherdev/dvrhub/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RecordStore = (*Store)(nil)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// Scopes are the OAuth scopes the service account is granted: read/write on
// spreadsheets and read-only Drive access to resolve a spreadsheet by name.
var Scopes = []string{sheets.SpreadsheetsScope, drive.DriveReadonlyScope}

// Config identifies the spreadsheet backing the store.
type Config struct {
	// SpreadsheetName is looked up through Drive when SpreadsheetID is empty.
	SpreadsheetName string
	// SpreadsheetID skips the Drive lookup.
	SpreadsheetID string
	// Worksheet is the tab title; empty selects the first worksheet.
	Worksheet string
	// CredentialsJSON is a service-account key in Google's JSON format.
	CredentialsJSON []byte
}

// Store is the Sheets implementation of driven.RecordStore.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
}

// Connect authenticates with the service-account key in cfg and opens the
// configured worksheet. Every failure wraps driven.ErrConnection.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	jwtCfg, err := google.JWTConfigFromJSON(cfg.CredentialsJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse service account key: %w", driven.ErrConnection, err)
	}

	return ConnectWithOptions(ctx, cfg, option.WithHTTPClient(jwtCfg.Client(ctx)))
}

// ConnectWithOptions opens the configured worksheet using explicit client
// options. cfg.CredentialsJSON is ignored; authentication must come from opts.
func ConnectWithOptions(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Store, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create sheets client: %w", driven.ErrConnection, err)
	}

	spreadsheetID := cfg.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheetID, err = findSpreadsheet(ctx, cfg.SpreadsheetName, opts)
		if err != nil {
			return nil, err
		}
	}

	worksheet, err := resolveWorksheet(ctx, svc, spreadsheetID, cfg.Worksheet)
	if err != nil {
		return nil, err
	}

	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
	}, nil
}

// SpreadsheetID returns the resolved spreadsheet ID.
func (s *Store) SpreadsheetID() string { return s.spreadsheetID }

// Worksheet returns the title of the worksheet holding the records.
func (s *Store) Worksheet() string { return s.worksheet }

// LoadAll reads the whole worksheet and maps each row below the header to a
// record. Rows with only empty cells are skipped.
func (s *Store) LoadAll(ctx context.Context) ([]model.Record, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, quoteSheet(s.worksheet)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", s.worksheet, err)
	}

	return parseRows(resp.Values)
}

// Append writes record as a new row after the last row of the table.
// Values are stored as typed (RAW), never parsed as formulas.
func (s *Store) Append(ctx context.Context, record model.Record) error {
	row := make([]interface{}, 0, len(model.Columns))
	for _, v := range record.Values() {
		row = append(row, v)
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, quoteSheet(s.worksheet)+"!A1", &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append record %s/%s: %w", record.Brand, record.Model, err)
	}
	return nil
}

func findSpreadsheet(ctx context.Context, name string, opts []option.ClientOption) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: spreadsheet name or ID required", driven.ErrConnection)
	}

	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: create drive client: %w", driven.ErrConnection, err)
	}

	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(name), spreadsheetMimeType)
	list, err := driveSvc.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: find spreadsheet %q: %w", driven.ErrConnection, name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: spreadsheet %q not found or not shared with the service account", driven.ErrConnection, name)
	}

	return list.Files[0].Id, nil
}

func resolveWorksheet(ctx context.Context, svc *sheets.Service, spreadsheetID, title string) (string, error) {
	ss, err := svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: open spreadsheet %s: %w", driven.ErrConnection, spreadsheetID, err)
	}
	if len(ss.Sheets) == 0 {
		return "", fmt.Errorf("%w: spreadsheet %s has no worksheets", driven.ErrConnection, spreadsheetID)
	}

	if title == "" {
		return ss.Sheets[0].Properties.Title, nil
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return title, nil
		}
	}
	return "", fmt.Errorf("%w: worksheet %q not found in spreadsheet %s", driven.ErrConnection, title, spreadsheetID)
}

// parseRows converts raw cell values into records. The first row names the
// columns; all five record columns must be present, in any order.
func parseRows(rows [][]interface{}) ([]model.Record, error) {
	records := []model.Record{}
	if len(rows) == 0 {
		return records, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, cell := range rows[0] {
		name := cellString(cell)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range model.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: header is missing columns %s", driven.ErrSchema, strings.Join(missing, ", "))
	}

	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		get := func(col string) string {
			i := index[col]
			if i >= len(row) {
				return ""
			}
			return cellString(row[i])
		}
		records = append(records, model.Record{
			Brand: get(model.ColumnBrand),
			Model: get(model.ColumnModel),
			User:  get(model.ColumnUser),
			Pass:  get(model.ColumnPass),
			Info:  get(model.ColumnInfo),
		})
	}

	return records, nil
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}

func isBlank(row []interface{}) bool {
	for _, cell := range row {
		if cellString(cell) != "" {
			return false
		}
	}
	return true
}

// quoteSheet quotes a worksheet title for use in A1 notation.
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
