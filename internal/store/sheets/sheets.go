package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/store"

	"github.com/google/uuid"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

var _ store.Store = (*Client)(nil)

// Header is the first row of the transactions sheet.
var Header = []any{"ID", "Name", "Description", "DateTime", "Price"}

type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	newID         func() string
	logger        *applog.Logger
}

// New creates a Sheets client authenticated with a service account and makes
// sure the header row is in place.
func New(ctx context.Context, opts Options, logger *applog.Logger) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(opts.SheetName)
	if sheetName == "" {
		sheetName = "Transactions"
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentSheets)

	svc, err := newSheetsService(ctx, opts.CredentialsJSON, opts.CredentialsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	c := &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		sheetName:     sheetName,
		newID:         uuid.NewString,
		logger:        logger,
	}
	if err := c.ensureHeader(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, credentialsJSON, credentialsFile string, logger *applog.Logger) (*gsheet.Service, error) {
	credentialsJSON = strings.TrimSpace(credentialsJSON)
	credentialsFile = strings.TrimSpace(credentialsFile)

	var creds []byte
	switch {
	case credentialsJSON != "":
		logger.InfoContext(ctx, "Using inline JSON credentials")
		creds = []byte(credentialsJSON)
	case credentialsFile != "":
		logger.InfoContext(ctx, "Reading credentials from file", "path", credentialsFile)
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		creds = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) ensureHeader(ctx context.Context) error {
	rng := fmt.Sprintf("%s!A1:E1", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header %s: %w", rng, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}
	vr := &gsheet.ValueRange{Values: [][]any{Header}}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write header %s: %w", rng, err)
	}
	c.logger.InfoContext(ctx, "Wrote header row", "sheet", c.sheetName)
	return nil
}

// Create appends one row after the last non-empty row of the sheet.
func (c *Client) Create(ctx context.Context, nt core.NewTransaction) (core.Transaction, error) {
	if c.svc == nil {
		return core.Transaction{}, store.ErrNotInitialized
	}
	t := nt.WithID(c.newID())

	rng := fmt.Sprintf("%s!A:E", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{toRow(t)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("append to sheet %s: %w", c.sheetName, err)
	}

	c.logger.DebugContext(ctx, "Transaction appended to sheet",
		applog.NewFields().
			WithOperation(applog.OpCreate).
			WithTransaction(t.ID, t.Name, t.Price, t.DateTime).
			ToSlice()...)
	return t, nil
}

// List reads every data row below the header, in row order.
func (c *Client) List(ctx context.Context) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, store.ErrNotInitialized
	}
	rng := fmt.Sprintf("%s!A2:E", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return parseRows(resp.Values), nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.svc == nil {
		return store.ErrNotInitialized
	}
	_, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	return err
}
