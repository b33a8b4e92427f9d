package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"glassdoor-search/internal/config"
	"glassdoor-search/internal/service"
	"glassdoor-search/pkg/entity"
	"glassdoor-search/pkg/logger"
	"glassdoor-search/pkg/pipeline"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application panic recovered: %v\n", r)
			os.Exit(1)
		}
	}()

	var (
		names      = flag.String("names", getEnvOrDefault("GLASSDOOR_NAMES", ""), "Comma-separated organization names, one search each (env: GLASSDOOR_NAMES)")
		configPath = flag.String("config", getEnvOrDefault("GLASSDOOR_CONFIG", ""), "Configuration file; empty uses environment only (env: GLASSDOOR_CONFIG)")
		envFile    = flag.String("env", ".env", "Environment file loaded before the configuration")
		timeout    = flag.Duration("timeout", 2*time.Minute, "Overall time limit")
		summary    = flag.Bool("summary", false, "Print a summary instead of the clues JSON")
		debug      = flag.Bool("debug", getEnvBoolOrDefault("DEBUG", false), "Enable debug logging (env: DEBUG)")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	requests := parseRequests(*names)
	if len(requests) == 0 {
		fmt.Fprintln(os.Stderr, "ERROR: at least one organization name is required.")
		fmt.Fprintln(os.Stderr, "Use -names flag or GLASSDOOR_NAMES environment variable.")
		fmt.Fprintln(os.Stderr, "")
		printUsage()
		os.Exit(1)
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewManager().Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		fmt.Fprintf(os.Stderr, "Credentials can be set with %s=partnerId:key[,partnerId:key]\n", config.CredentialsEnv)
		os.Exit(1)
	}

	settings := cfg.LoggerSettings()
	settings.Output = "stderr"
	if *debug {
		settings.Level = "debug"
	}
	logger.SetLogger(logger.New(settings))
	log := logger.GetLogger().WithComponent("main")

	secureLog := logger.NewSecurityLogger(log)
	secureLog.SafeInfo("Configuration loaded", map[string]interface{}{
		"endpoint":    secureLog.MaskAPIEndpoint(cfg.Provider.Endpoint),
		"credentials": len(cfg.Provider.Credentials),
		"images":      cfg.Images.Enabled,
		"requests":    len(requests),
	})

	os.Exit(execute(cfg, requests, *timeout, *summary, log))
}

// execute runs the searches and prints the results, returning the exit code
func execute(cfg *config.Config, requests []*entity.Request, timeout time.Duration, summary bool, log *logger.Logger) int {
	search, err := service.NewSearch(cfg)
	if err != nil {
		log.WithError(err).Error("Failed to create search service")
		return 1
	}
	defer search.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	outcomes, err := search.RunBatch(ctx, requests)
	if err != nil {
		log.WithError(err).Error("Search failed")
		return 1
	}

	if summary {
		printSummary(outcomes)
	} else if err := printClues(outcomes); err != nil {
		log.WithError(err).Error("Failed to write output")
		return 1
	}

	for _, outcome := range outcomes {
		if len(outcome.Errors) > 0 {
			return 2
		}
	}
	return 0
}

// parseRequests builds one organization request per comma-separated name
func parseRequests(names string) []*entity.Request {
	var requests []*entity.Request
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		requests = append(requests, &entity.Request{EntityType: entity.Organization, Name: name})
	}
	return requests
}

func printClues(outcomes []*pipeline.Outcome) error {
	var clues []*entity.Clue
	for _, outcome := range outcomes {
		clues = append(clues, outcome.Clues...)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(clues)
}

func printSummary(outcomes []*pipeline.Outcome) {
	fmt.Printf("\n=== Glassdoor Search Results ===\n")
	for _, outcome := range outcomes {
		fmt.Printf("Request %s: %d queries, %d employers, %d clues (%s)\n",
			outcome.RequestID, len(outcome.Queries), outcome.Results, len(outcome.Clues), outcome.Duration.Round(time.Millisecond))

		for _, metadata := range outcome.Primary {
			fmt.Printf("   %s  %s\n", metadata.OriginEntityCode, metadata.Name)
		}
		for _, failure := range outcome.Errors {
			fmt.Printf("   FAILED %q: %s\n", failure.Query, failure.Error)
		}
	}
}

func printUsage() {
	fmt.Println("Glassdoor employer search")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./glassdoor-search -names \"Acme Inc,Globex\" [OPTIONS]")
	fmt.Println("")
	fmt.Println("OPTIONS:")
	fmt.Println("    -names string      Comma-separated organization names (env: GLASSDOOR_NAMES)")
	fmt.Println("    -config string     YAML configuration file (env: GLASSDOOR_CONFIG)")
	fmt.Println("    -env string        Environment file (default: .env)")
	fmt.Println("    -timeout duration  Overall time limit (default: 2m)")
	fmt.Println("    -summary           Print a summary instead of clues JSON")
	fmt.Println("    -debug             Enable debug logging (env: DEBUG)")
	fmt.Println("    -help              Show this help message")
	fmt.Println("")
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("    GLASSDOOR_CREDENTIALS       partnerId:key pairs, comma-separated")
	fmt.Println("    GLASSDOOR_PROVIDER_ENDPOINT API root (default: http://api.glassdoor.com/api)")
	fmt.Println("    GLASSDOOR_IMAGES_ENABLED    Download preview images (default: true)")
	fmt.Println("    LOG_LEVEL                   Log level before configuration is loaded")
	fmt.Println("")
	fmt.Println("EXIT CODES:")
	fmt.Println("    0  all searches succeeded")
	fmt.Println("    1  configuration, setup or run failure (including timeout)")
	fmt.Println("    2  finished, but at least one query failed")
}
