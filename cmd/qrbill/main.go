// Command qrbill renders a Swiss QR bill through a running BillRenderer
// service and writes the SVG, or the raw payload, to stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/bill"
	"github.com/Xausdorf/swiss-qr-bill/internal/infrastructure/config"
	"github.com/Xausdorf/swiss-qr-bill/internal/infrastructure/grpcclient"
)

const requestTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := run(os.Args[1:]); err != nil {
		logger.Error("qrbill failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("qrbill", flag.ContinueOnError)
	addr := fs.String("addr", cfg.CoreGRPCAddr, "BillRenderer gRPC address")
	payloadOnly := fs.Bool("payload", false, "print the QR payload instead of the SVG")

	var d bill.PaymentData
	fs.StringVar(&d.Creditor.Name, "name", "", "creditor name")
	fs.StringVar(&d.Creditor.Address, "address", "", "creditor street")
	fs.StringVar(&d.Creditor.BuildingNumber, "building", "", "creditor building number")
	zip := fs.String("zip", "", "creditor postal code")
	fs.StringVar(&d.Creditor.City, "city", "", "creditor city")
	fs.StringVar(&d.Creditor.Account, "account", "", "creditor IBAN or QR-IBAN")
	fs.StringVar(&d.Creditor.Country, "country", "", "creditor country code (default CH)")
	fs.StringVar(&d.Currency, "currency", "", "CHF or EUR (default CHF)")
	amount := fs.String("amount", "", "amount, empty leaves it open")
	fs.StringVar(&d.Reference, "reference", "", "QR or creditor reference")
	fs.StringVar(&d.Message, "message", "", "unstructured message")

	if err := fs.Parse(args); err != nil {
		return err
	}
	d.Creditor.Zip = bill.ZipCode(*zip)
	if *amount != "" {
		a, err := decimal.NewFromString(*amount)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		d.Amount = &a
	}

	// Fail on bad input before dialing.
	if err := bill.Validate(d); err != nil {
		var verr *bill.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid -%s: %s", flagName(verr.Field), verr.Reason)
		}
		return err
	}

	client, err := grpcclient.NewClient(*addr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if *payloadOnly {
		payload, err := client.FormatPayload(ctx, d)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, payload)
		return err
	}

	svg, err := client.RenderSVG(ctx, d)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(svg)
	return err
}

func flagName(field string) string {
	switch field {
	case "buildingNumber":
		return "building"
	case "additionalInformation":
		return "message"
	default:
		return field
	}
}
