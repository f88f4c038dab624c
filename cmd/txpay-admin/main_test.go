package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/txpay/txpay-admin/config"
	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/filterinput"
	"github.com/txpay/txpay-admin/internal/mocks"
	"github.com/txpay/txpay-admin/internal/ports"
)

type fakePublicAPI struct {
	login  func(ctx context.Context, email, password string) (model.LoginResponse, error)
	health func(ctx context.Context) (model.Health, error)
}

func (f *fakePublicAPI) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	return f.login(ctx, email, password)
}

func (f *fakePublicAPI) Health(ctx context.Context) (model.Health, error) {
	return f.health(ctx)
}

func testApp(t *testing.T, api ports.TXPayAPI) *app {
	t.Helper()
	t.Setenv(tokenEnv, "test-token")
	cfg := config.AppConfig{}
	cfg.API.BaseURL = "https://api.txpay.example"
	cfg.UI.PageSize = 20
	cfg.UI.FilterDebounce = 400 * time.Millisecond
	return &app{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		newAPI: func(token string) (ports.TXPayAPI, error) {
			assert.Equal(t, "test-token", token)
			return api, nil
		},
		publicAPI: func() (publicAPI, error) {
			return nil, errors.New("public API not configured")
		},
		clock: filterinput.NewManualClock(),
	}
}

func execute(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func merchantPage() model.Page[model.Merchant] {
	return model.Page[model.Merchant]{
		Data: []model.Merchant{
			{ID: "m1", Name: "Acme Tacos", Email: "ops@acme.example", Country: "MX", Status: model.MerchantStatusActive},
			{ID: "m2", Name: "Bodega Sur", Email: "hola@bodega.example", Country: "MX", Status: model.MerchantStatusActive},
		},
		Meta: model.ListMeta{Total: 41, TotalPages: 3, Page: 2, Limit: 20, HasNextPage: true, HasPrevPage: true},
	}
}

func TestList_ValidatesFiltersAndPrintsTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListMerchants(gomock.Any(), model.ListQuery{
		Page: 2, Limit: 20, Filters: map[string]string{"status": "ACTIVE", "country": "MX"},
	}).Return(merchantPage(), nil)

	out, err := execute(t, testApp(t, api), "", "list", "merchants", "--page", "2", "-f", "status=active", "-f", "country=mx")

	require.NoError(t, err)
	assert.Contains(t, out, "Acme Tacos")
	assert.Contains(t, out, "Bodega Sur")
	assert.Contains(t, out, "Page 2 of 3 · 41 results")
}

func TestList_InvalidFilterSkipsAPI(t *testing.T) {
	api := mocks.NewMockTXPayAPI(gomock.NewController(t))

	_, err := execute(t, testApp(t, api), "", "list", "transactions", "-f", "currency=dollars")

	require.Error(t, err)
}

func TestList_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown tab", args: []string{"list", "reports"}, want: "unknown tab"},
		{name: "configuration is not a list", args: []string{"list", "configuration"}, want: "unknown tab"},
		{name: "malformed filter", args: []string{"list", "merchants", "-f", "status"}, want: "not key=value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewMockTXPayAPI(gomock.NewController(t))
			_, err := execute(t, testApp(t, api), "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestList_Query(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListMerchants(gomock.Any(), gomock.Any()).Return(merchantPage(), nil)

	out, err := execute(t, testApp(t, api), "", "list", "merchants", "-q", "data[].id")

	require.NoError(t, err)
	assert.JSONEq(t, `["m1","m2"]`, out)
}

func TestList_InvalidQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListMerchants(gomock.Any(), gomock.Any()).Return(merchantPage(), nil)

	_, err := execute(t, testApp(t, api), "", "list", "merchants", "-q", "data[")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --query")
}

func TestList_JSONOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListPartners(gomock.Any(), gomock.Any()).Return(model.Page[model.Partner]{
		Data: []model.Partner{{ID: "p1", Name: "Norte", CommissionRate: "1.5"}},
		Meta: model.ListMeta{Total: 1, TotalPages: 1, Page: 1},
	}, nil)

	out, err := execute(t, testApp(t, api), "", "list", "partners", "-o", "json")

	require.NoError(t, err)
	assert.Contains(t, out, `"commissionRate": 1.5`)
	assert.Contains(t, out, `"totalPages": 1`)
}

func TestList_EmptyPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListAdminUsers(gomock.Any(), gomock.Any()).Return(model.Page[model.AdminUser]{}, nil)

	out, err := execute(t, testApp(t, api), "", "list", "admins")

	require.NoError(t, err)
	assert.Equal(t, "No records match the current filters.\n", out)
}

func TestAPI_RequiresToken(t *testing.T) {
	a := testApp(t, nil)
	t.Setenv(tokenEnv, "")

	_, err := execute(t, a, "", "list", "merchants")

	require.Error(t, err)
	assert.Contains(t, err.Error(), tokenEnv)
}

func TestAPI_TokenFlagWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListMerchants(gomock.Any(), gomock.Any()).Return(model.Page[model.Merchant]{}, nil)
	a := testApp(t, nil)
	var got string
	a.newAPI = func(token string) (ports.TXPayAPI, error) {
		got = token
		return api, nil
	}

	_, err := execute(t, a, "", "--token", "flag-token", "list", "merchants")

	require.NoError(t, err)
	assert.Equal(t, "flag-token", got)
}

func TestTransactionActions(t *testing.T) {
	for _, action := range []model.TransactionAction{model.ActionCapture, model.ActionVoid, model.ActionRefund} {
		t.Run(string(action), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := mocks.NewMockTXPayAPI(ctrl)
			api.EXPECT().PerformTransactionAction(gomock.Any(), "t1", action).
				Return(model.Transaction{ID: "t1", Status: model.TransactionStatusCaptured}, nil)

			out, err := execute(t, testApp(t, api), "", string(action), "t1")

			require.NoError(t, err)
			assert.Equal(t, "t1 CAPTURED\n", out)
		})
	}
}

func TestTransactionAction_APIError(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().PerformTransactionAction(gomock.Any(), "t1", model.ActionRefund).
		Return(model.Transaction{}, errors.New("Transaction is not captured"))

	_, err := execute(t, testApp(t, api), "", "refund", "t1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refund t1")
}

func TestExport_WritesFile(t *testing.T) {
	dir := t.TempDir()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ExportTransactions(gomock.Any(), map[string]string{"status": "CAPTURED"}).
		Return(model.Export{Filename: "transactions-2026-03.xlsx", Body: io.NopCloser(strings.NewReader("sheet"))}, nil)
	path := filepath.Join(dir, "out.xlsx")

	out, err := execute(t, testApp(t, api), "", "export", "-f", "status=captured", "--out", path)

	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path+" (5 bytes)")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sheet", string(b))
}

func TestExport_Stdout(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ExportTransactions(gomock.Any(), map[string]string{}).
		Return(model.Export{Body: io.NopCloser(strings.NewReader("sheet"))}, nil)

	out, err := execute(t, testApp(t, api), "", "export", "--out", "-")

	require.NoError(t, err)
	assert.Equal(t, "sheet", out)
}

func TestExport_InvalidFilter(t *testing.T) {
	api := mocks.NewMockTXPayAPI(gomock.NewController(t))

	_, err := execute(t, testApp(t, api), "", "export", "-f", "from=yesterday")

	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		health  model.Health
		want    string
		wantErr bool
	}{
		{name: "up", health: model.Health{Status: "UP", Version: "2.4.1"}, want: "UP (version 2.4.1)\n"},
		{name: "down", health: model.Health{Status: "DOWN"}, want: "DOWN (version unknown)\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testApp(t, nil)
			a.publicAPI = func() (publicAPI, error) {
				return &fakePublicAPI{health: func(context.Context) (model.Health, error) { return tt.health, nil }}, nil
			}

			out, err := execute(t, a, "", "health")

			assert.Equal(t, tt.want, out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLogin(t *testing.T) {
	a := testApp(t, nil)
	a.publicAPI = func() (publicAPI, error) {
		return &fakePublicAPI{login: func(_ context.Context, email, password string) (model.LoginResponse, error) {
			assert.Equal(t, "ops@txpay.example", email)
			assert.Equal(t, "s3cret", password)
			return model.LoginResponse{AccessToken: "tok-123", User: model.Profile{Email: email, Role: "ADMIN"}}, nil
		}}, nil
	}

	out, err := execute(t, a, "s3cret\r\nignored\n", "login", "--email", "ops@txpay.example")

	require.NoError(t, err)
	assert.Equal(t, "tok-123\n", out)
}

func TestLogin_RequiresPassword(t *testing.T) {
	_, err := execute(t, testApp(t, nil), "", "login", "--email", "ops@txpay.example")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestParseFilters(t *testing.T) {
	got, err := parseFilters([]string{"status=ACTIVE", " search =acme=1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "ACTIVE", "search": "acme=1"}, got)

	_, err = parseFilters([]string{"=x"})
	require.Error(t, err)
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	writeError(&buf, context.Canceled)
	assert.Equal(t, "error: interrupted\n", buf.String())
}
