package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vincent/forexledger/internal/infrastructure/config"
	"github.com/vincent/forexledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "forexledger-cli",
		Short: "ForexLedger CLI tool",
		Long:  `A command line interface for interacting with the ForexLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ForexLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Rate commands
	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Exchange rate operations",
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh [bank]",
		Short: "Refresh a bank's exchange rates from the upstream source",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			refreshRates(args[0])
		},
	}

	listRatesCmd := &cobra.Command{
		Use:   "list [bank]",
		Short: "List a bank's stored exchange rates",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listRates(args[0])
		},
	}

	ratesCmd.AddCommand(refreshCmd)
	ratesCmd.AddCommand(listRatesCmd)
	rootCmd.AddCommand(ratesCmd)

	// Book commands
	booksCmd := &cobra.Command{
		Use:   "books",
		Short: "Book operations",
	}

	listBooksCmd := &cobra.Command{
		Use:   "list [creator]",
		Short: "List a creator's books with their current TWD valuations",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listBooks(args[0])
		},
	}

	booksCmd.AddCommand(listBooksCmd)
	rootCmd.AddCommand(booksCmd)

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration operations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(false)
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(true)
		},
	}

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func refreshRates(bank string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(refreshRatesURL(baseURL, bank), "application/json", nil)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Refresh FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Refreshed rates for %s\n", strings.ToUpper(bank))
	if stored, ok := result["stored"].(float64); ok {
		fmt.Printf("Stored: %d currencies\n", int(stored))
	}
}

func listRates(bank string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/rates/" + url.PathEscape(strings.ToUpper(bank)))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("List FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result struct {
		Rates []struct {
			Currency    string `json:"currency"`
			BuyingRate  string `json:"buying_rate"`
			SellingRate string `json:"selling_rate"`
		} `json:"rates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-8s %12s %12s\n", "CURRENCY", "BUYING", "SELLING")
	for _, r := range result.Rates {
		fmt.Printf("%-8s %12s %12s\n", r.Currency, r.BuyingRate, r.SellingRate)
	}
}

func listBooks(creator string) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/books/", nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("X-Creator", creator)

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("List FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result struct {
		Books []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Bank     string `json:"bank"`
			Currency string `json:"currency"`
			Balance  string `json:"balance"`
			TwdValue int64  `json:"twd_value"`
		} `json:"books"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-28s %-20s %-8s %-4s %14s %14s\n", "ID", "NAME", "BANK", "CCY", "BALANCE", "TWD VALUE")
	for _, b := range result.Books {
		fmt.Printf("%-28s %-20s %-8s %-4s %14s %14d\n", b.ID, b.Name, b.Bank, b.Currency, b.Balance, b.TwdValue)
	}
}

func runMigrations(down bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if down {
		err = postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
	} else {
		err = postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	}
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migration complete")
}

// refreshRatesURL builds the refresh endpoint for a bank, upper-casing the
// code the way the API expects it.
func refreshRatesURL(base, bank string) string {
	return base + "/api/v1/rates/" + url.PathEscape(strings.ToUpper(bank)) + "/refresh"
}
