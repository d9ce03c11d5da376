package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"freelancehub_billing/internal/adapter/persistence/repository"
	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/infrastructure/database"
	"freelancehub_billing/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"
)

// ratectl is the billing operations tool: it provisions the local tables,
// seeds the currency registry and manages manual exchange rates. The
// marketplace services talk to the billing core in-process; rate curation
// stays a back-office concern, so it lives here.

const usageText = `usage: ratectl <command> [flags]

commands:
  init-tables       create the billing tables (local/dev DynamoDB)
  seed-currencies   register the default currency set
  list-currencies   print active currencies
  set-rate          set the active rate for a pair (-from -to -rate -by)
  get-rate          print the active rate for a pair (-from -to)
  history           print rate history for a pair (-from -to -limit)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	ctx := context.Background()
	ddb := database.ConnectDynamoDB()

	currencyRepo := repository.NewCurrencyDynamoRepository(ddb)
	rateRepo := repository.NewExchangeRateDynamoRepository(ddb)
	tx := repository.NewDynamoTransactStore(ddb)

	currencies := usecase.NewCurrencyUseCase(currencyRepo)
	rates := usecase.NewExchangeRateUseCase(rateRepo, currencies, tx)

	switch os.Args[1] {
	case "init-tables":
		if err := database.EnsureBillingTables(ctx, ddb); err != nil {
			log.Fatalf("init-tables failed: %v", err)
		}
	case "seed-currencies":
		seedCurrencies(ctx, currencies)
	case "list-currencies":
		listCurrencies(ctx, currencies)
	case "set-rate":
		setRate(ctx, rates, os.Args[2:])
	case "get-rate":
		getRate(ctx, rates, os.Args[2:])
	case "history":
		history(ctx, rates, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usageText)
		os.Exit(2)
	}
}

var defaultCurrencies = []entities.Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$", IsActive: true, IsBase: true, DecimalPlaces: 2},
	{Code: "EUR", Name: "Euro", Symbol: "€", IsActive: true, DecimalPlaces: 2},
	{Code: "GBP", Name: "British Pound", Symbol: "£", IsActive: true, DecimalPlaces: 2},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", IsActive: true, DecimalPlaces: 0},
	{Code: "BRL", Name: "Brazilian Real", Symbol: "R$", IsActive: true, DecimalPlaces: 2},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹", IsActive: true, DecimalPlaces: 2},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", IsActive: true, DecimalPlaces: 2},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", IsActive: true, DecimalPlaces: 2},
}

func seedCurrencies(ctx context.Context, currencies usecase.ICurrencyUseCase) {
	for _, c := range defaultCurrencies {
		_, err := currencies.Register(ctx, c)
		switch {
		case errors.Is(err, usecase.ErrCurrencyAlreadyExists):
			log.Printf("skip %s: already registered", c.Code)
		case err != nil:
			log.Fatalf("seed %s failed: %v", c.Code, err)
		default:
			log.Printf("registered %s (%s)", c.Code, c.Name)
		}
	}
}

func listCurrencies(ctx context.Context, currencies usecase.ICurrencyUseCase) {
	list, err := currencies.ListSupported(ctx)
	if err != nil {
		log.Fatalf("list-currencies failed: %v", err)
	}
	for _, c := range list {
		base := ""
		if c.IsBase {
			base = " (base)"
		}
		fmt.Printf("%s  %s  %s  decimals=%d%s\n", c.Code, c.Symbol, c.Name, c.DecimalPlaces, base)
	}
}

func setRate(ctx context.Context, rates usecase.IExchangeRateUseCase, args []string) {
	fs := flag.NewFlagSet("set-rate", flag.ExitOnError)
	from := fs.String("from", "", "source currency code")
	to := fs.String("to", "", "target currency code")
	rateStr := fs.String("rate", "", "exchange rate (decimal)")
	by := fs.String("by", "ratectl", "user id recorded as rate author")
	_ = fs.Parse(args)

	rate, err := decimal.NewFromString(*rateStr)
	if err != nil {
		log.Fatalf("invalid -rate %q: %v", *rateStr, err)
	}

	change, err := rates.SetRate(ctx, *from, *to, rate, *by)
	if err != nil {
		log.Fatalf("set-rate failed: %v", err)
	}
	if change.OldRate != nil {
		fmt.Printf("%s->%s: %s (was %s)\n", change.FromCurrency, change.ToCurrency, change.NewRate.String(), change.OldRate.String())
		return
	}
	fmt.Printf("%s->%s: %s (new pair)\n", change.FromCurrency, change.ToCurrency, change.NewRate.String())
}

func getRate(ctx context.Context, rates usecase.IExchangeRateUseCase, args []string) {
	fs := flag.NewFlagSet("get-rate", flag.ExitOnError)
	from := fs.String("from", "", "source currency code")
	to := fs.String("to", "", "target currency code")
	_ = fs.Parse(args)

	r, err := rates.GetRate(ctx, *from, *to)
	if err != nil {
		log.Fatalf("get-rate failed: %v", err)
	}
	fmt.Printf("%s->%s: %s (source=%s effective=%s)\n", r.FromCurrency, r.ToCurrency, r.Rate.String(), r.Source, r.EffectiveDate.Format("2006-01-02 15:04:05"))
}

func history(ctx context.Context, rates usecase.IExchangeRateUseCase, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	from := fs.String("from", "", "source currency code")
	to := fs.String("to", "", "target currency code")
	limit := fs.Int("limit", 20, "maximum records")
	_ = fs.Parse(args)

	records, err := rates.GetHistory(ctx, *from, *to, *limit)
	if err != nil {
		log.Fatalf("history failed: %v", err)
	}
	for _, r := range records {
		active := " "
		if r.IsActive {
			active = "*"
		}
		fmt.Printf("%s %s  %s  by=%s  %s\n", active, r.EffectiveDate.Format("2006-01-02 15:04:05"), r.Rate.String(), r.CreatedBy, r.Source)
	}
}
