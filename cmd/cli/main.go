package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "goprovision-cli",
		Short: "GoProvision CLI tool",
		Long:  `A command line interface for triggering credit risk calculations via the GoProvision API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoProvision API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Minute, "Request timeout")

	var portfolioID, reportingDate string

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculation operations",
	}
	calcCmd.PersistentFlags().StringVar(&portfolioID, "portfolio", "", "Portfolio ID")
	calcCmd.PersistentFlags().StringVar(&reportingDate, "date", "", "Reporting date (YYYY-MM-DD, defaults to today)")

	stageCmd := &cobra.Command{
		Use:   "stage",
		Short: "Stage every loan of a portfolio",
		Run: func(cmd *cobra.Command, args []string) {
			triggerCalculation("/api/v1/calculations/staging", portfolioID, reportingDate)
		},
	}

	eclCmd := &cobra.Command{
		Use:   "ecl",
		Short: "Run the expected credit loss calculation",
		Run: func(cmd *cobra.Command, args []string) {
			triggerCalculation("/api/v1/calculations/ecl", portfolioID, reportingDate)
		},
	}

	impairmentCmd := &cobra.Command{
		Use:   "impairment",
		Short: "Run the local regulatory provisioning calculation",
		Run: func(cmd *cobra.Command, args []string) {
			triggerCalculation("/api/v1/calculations/local-impairment", portfolioID, reportingDate)
		},
	}

	calcCmd.AddCommand(stageCmd, eclCmd, impairmentCmd)
	rootCmd.AddCommand(calcCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Calculation run operations",
	}

	runGetCmd := &cobra.Command{
		Use:   "get <run-id>",
		Short: "Show a calculation run",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/runs/" + args[0])
		},
	}

	runProgressCmd := &cobra.Command{
		Use:   "progress <run-id>",
		Short: "Show the last reported progress of a run",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/runs/" + args[0] + "/progress")
		},
	}

	runCmd.AddCommand(runGetCmd, runProgressCmd)
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func triggerCalculation(path, portfolioID, reportingDate string) {
	if portfolioID == "" {
		fmt.Println("--portfolio is required")
		os.Exit(1)
	}

	payload, _ := json.Marshal(map[string]string{
		"portfolio_id":   portfolioID,
		"reporting_date": reportingDate,
	})

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Calculation FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	printJSON(body)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	printJSON(body)
}

func printJSON(body []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(buf.String())
}
