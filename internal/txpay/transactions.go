package txpay

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/txpay/txpay-admin/internal/domain/model"
	apperrors "github.com/txpay/txpay-admin/internal/errors"
)

// SpreadsheetContentType is assumed when the export response omits a content type.
const SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ListTransactions returns one page of transactions.
func (c *Client) ListTransactions(ctx context.Context, q model.ListQuery) (model.Page[model.Transaction], error) {
	return list[model.Transaction](ctx, c, transactions, q)
}

// GetTransaction returns a transaction by id.
func (c *Client) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	return get[model.Transaction](ctx, c, transactions, id)
}

// PerformTransactionAction posts capture, refund or void for a transaction.
// Every call carries a fresh Idempotency-Key so a replayed request cannot act twice.
func (c *Client) PerformTransactionAction(ctx context.Context, id string, action model.TransactionAction) (model.Transaction, error) {
	if _, ok := model.ParseTransactionAction(string(action)); !ok {
		return model.Transaction{}, apperrors.ValidationField("action", "unsupported transaction action")
	}

	header := http.Header{}
	header.Set("Idempotency-Key", uuid.NewString())

	var out model.Transaction
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     transactions.item(id) + "/" + string(action),
		endpoint: transactions.name + "." + string(action),
		header:   header,
	}, &out)
	if err != nil {
		return model.Transaction{}, err
	}
	if out.ID == "" {
		// Some deployments answer 204; report the id we acted on.
		out.ID = id
	}
	return out, nil
}

// ExportTransactions downloads the spreadsheet for the filtered transactions.
// The caller must close the returned Body.
func (c *Client) ExportTransactions(ctx context.Context, filters map[string]string) (model.Export, error) {
	q := url.Values{}
	for k, v := range filters {
		if v != "" {
			q.Set(k, v)
		}
	}

	header := http.Header{}
	header.Set("Accept", SpreadsheetContentType+", application/octet-stream;q=0.9")

	resp, err := c.send(ctx, call{
		method:   http.MethodGet,
		path:     transactions.path + "/export",
		endpoint: transactions.name + ".export",
		query:    q,
		header:   header,
	})
	if err != nil {
		return model.Export{}, err
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = SpreadsheetContentType
	}
	return model.Export{
		Filename:    exportFilename(resp.Header.Get("Content-Disposition"), time.Now()),
		ContentType: ct,
		Body:        resp.Body,
	}, nil
}

func exportFilename(disposition string, now time.Time) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := path.Base(params["filename"]); name != "" && name != "." && name != "/" {
				return name
			}
		}
	}
	return "transactions-" + now.UTC().Format("2006-01-02") + ".xlsx"
}
