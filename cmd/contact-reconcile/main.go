// Command contact-reconcile reconciles mobile/telephone pairs from a CSV file.
//
// Input columns: id,mobile,telephone (header required). Output is written to
// stdout as id,mobile,telephone,is_mobile_valid,is_telephone_valid,outcome.
// Rows the API would refuse are copied through with outcome "rejected".
// Logs go to stderr.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"referral_portal_backend/internal/contacts"
	"referral_portal_backend/internal/contacts/transport"
	"referral_portal_backend/platform/config"
	"referral_portal_backend/platform/logger"
	"referral_portal_backend/platform/validator"
)

type contactRow struct {
	id        string
	mobile    *string
	telephone *string
}

func main() {
	cfg, err := config.LoadCLI()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.NewWithWriter(cfg.Env, os.Stderr)
	log.Info("starting contact reconciliation")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	input := io.Reader(os.Stdin)
	if len(os.Args) > 1 && os.Args[1] != "-" {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Error("failed to open input", "path", os.Args[1], "error", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close()
		}()
		input = f
	}

	module, err := contacts.NewModule(cfg, validator.New(), log)
	if err != nil {
		log.Error("failed to initialize contacts module", "error", err)
		os.Exit(1)
	}

	processed, err := run(ctx, module, input, os.Stdout)
	if err != nil {
		log.Error("contact reconciliation failed", "processed", processed, "error", err)
		os.Exit(1)
	}
	log.Info("contact reconciliation complete", "processed", processed)
}

func run(ctx context.Context, module *contacts.Module, in io.Reader, out io.Writer) (int, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if strings.ToLower(strings.Join(header, ",")) != "id,mobile,telephone" {
		return 0, fmt.Errorf("unexpected header %q, want id,mobile,telephone", strings.Join(header, ","))
	}

	writer := csv.NewWriter(out)
	if err := writer.Write([]string{"id", "mobile", "telephone", "is_mobile_valid", "is_telephone_valid", "outcome"}); err != nil {
		return 0, err
	}

	processed := 0
	for {
		rows, readErr := readBatch(reader, transport.MaxBatchSize)
		if len(rows) > 0 {
			if err := reconcileRows(ctx, module, rows, writer); err != nil {
				return processed, err
			}
			processed += len(rows)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return processed, readErr
		}
	}

	writer.Flush()
	return processed, writer.Error()
}

func readBatch(reader *csv.Reader, size int) ([]contactRow, error) {
	rows := make([]contactRow, 0, size)
	for len(rows) < size {
		record, err := reader.Read()
		if err != nil {
			return rows, err
		}
		rows = append(rows, contactRow{
			id:        record[0],
			mobile:    optional(record[1]),
			telephone: optional(record[2]),
		})
	}
	return rows, nil
}

// outcomeRejected marks rows that failed request validation. They are written
// back as read with both flags false.
const outcomeRejected = "rejected"

func reconcileRows(ctx context.Context, module *contacts.Module, rows []contactRow, writer *csv.Writer) error {
	svc := module.Service()
	results := make([]transport.ReconcileResponse, len(rows))

	req := transport.BatchReconcileRequest{Items: make([]transport.ReconcileRequest, 0, len(rows))}
	accepted := make([]int, 0, len(rows))
	for i, row := range rows {
		item := transport.ReconcileRequest{Mobile: row.mobile, Telephone: row.telephone}
		if err := svc.Validate(item); err != nil {
			results[i] = transport.ReconcileResponse{Mobile: row.mobile, Telephone: row.telephone, Outcome: outcomeRejected}
			continue
		}
		req.Items = append(req.Items, item)
		accepted = append(accepted, i)
	}

	if len(req.Items) > 0 {
		resp, err := svc.ReconcileBatch(ctx, req)
		if err != nil {
			return err
		}
		for j, item := range resp.Items {
			results[accepted[j]] = item
		}
	}

	for i, item := range results {
		record := []string{
			rows[i].id,
			deref(item.Mobile),
			deref(item.Telephone),
			strconv.FormatBool(item.IsMobileValid),
			strconv.FormatBool(item.IsTelephoneValid),
			item.Outcome,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
