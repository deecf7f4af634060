package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gegianno/domain-checker/internal/checker"
	"github.com/gegianno/domain-checker/internal/models"
)

var log = logrus.New()

func main() {
	// Optional .env for DOMAIN_CHECKER_* defaults
	_ = godotenv.Load()

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		inputFile string
		workers   int
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "domain-checker [domains...]",
		Short: "Check whether domain names are registered or available",
		Long: `domain-checker checks domain availability using WHOIS, DNS resolution,
and an HTTP probe, reconciling the three signals into one verdict per domain.

Domains are read from arguments, from a file (one per line), or from stdin.`,
		Example: `  domain-checker example.com another-domain.com
  domain-checker --file domains.txt
  cat domains.txt | domain-checker`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			domains, err := gatherDomains(cmd, inputFile, args)
			if err != nil {
				return err
			}
			domains = checker.NormalizeDomains(domains)
			if len(domains) == 0 {
				log.Warn("no domains provided")
				return nil
			}

			c := checker.NewWithConfig(checker.Config{
				WhoisTimeout: timeout,
				HTTPTimeout:  timeout,
				Workers:      workers,
				Logger:       log,
			})
			results := c.CheckBatch(cmd.Context(), domains)

			models.SortForDisplay(results)
			renderTable(cmd.OutOrStdout(), results)
			renderSummary(cmd.OutOrStdout(), models.Summarize(results))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "",
		"file containing domains to check, one per line")
	cmd.Flags().IntVarP(&workers, "workers", "w", envInt("DOMAIN_CHECKER_WORKERS", 5),
		"number of concurrent domain checks")
	cmd.Flags().DurationVar(&timeout, "timeout", envDuration("DOMAIN_CHECKER_TIMEOUT", 5*time.Second),
		"timeout per registry query and per website probe attempt")

	return cmd
}

// gatherDomains resolves the input source: --file wins, then a lone .txt
// argument, then positional arguments, then stdin.
func gatherDomains(cmd *cobra.Command, inputFile string, args []string) ([]string, error) {
	switch {
	case inputFile != "":
		return readDomainsFromFile(inputFile)

	case len(args) == 1 && strings.HasSuffix(args[0], ".txt"):
		return readDomainsFromFile(args[0])

	case len(args) > 0:
		log.Infof("using %d domains from command line arguments", len(args))
		return args, nil

	default:
		if !stdinIsPiped() {
			fmt.Fprintln(cmd.OutOrStdout(),
				"Enter domain names (one per line). Press Ctrl+D when done:")
		}
		domains, err := readLines(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading domains from stdin: %w", err)
		}
		log.Infof("read %d domains from input", len(domains))
		return domains, nil
	}
}

// readDomainsFromFile reads one domain per line. An unreadable file is the
// only fatal condition in the tool.
func readDomainsFromFile(filename string) ([]string, error) {
	log.WithField("file", filename).Info("reading domains from file")
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("reading domains file: %w", err)
	}
	defer f.Close()

	domains, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading domains file %s: %w", filename, err)
	}
	log.Infof("read %d domains from file", len(domains))
	return domains, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func stdinIsPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) == 0
}

func renderTable(w io.Writer, results []models.DomainCheckResult) {
	fmt.Fprintln(w, "\nDomain Availability Results:")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Domain", "Status", "Expiration Date", "Registrar", "DNS", "Website"})
	for _, r := range results {
		table.Append([]string{
			r.Domain,
			statusLabel(r.Availability),
			formatExpiration(r.ExpirationDate),
			orNA(r.Registrar),
			mark(r.HasDNS),
			mark(r.HasWebsite),
		})
	}
	table.Render()
}

func renderSummary(w io.Writer, s models.Summary) {
	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "Total domains checked: %d\n", s.Total)
	fmt.Fprintf(w, "Available: %d\n", s.Available)
	fmt.Fprintf(w, "Registered: %d\n", s.Registered)
	if s.Errors > 0 {
		fmt.Fprintf(w, "Errors: %d\n", s.Errors)
	}
}

func statusLabel(a models.Availability) string {
	switch a {
	case models.StatusAvailable:
		return "Available"
	case models.StatusRegistered:
		return "Registered"
	default:
		return "Error"
	}
}

func formatExpiration(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
