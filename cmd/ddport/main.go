package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/ddport/internal/core"
	"github.com/JonMunkholm/ddport/internal/ddp"
	"github.com/JonMunkholm/ddport/internal/extract"
	"github.com/JonMunkholm/ddport/internal/logging"
	"github.com/JonMunkholm/ddport/internal/tiktok" // Registers the TikTok platform
)

var version = "dev"

var (
	logLevel  string
	logFormat string
	platform  string
	output    string
	logger    *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err with its reference code when one is catalogued.
func reportError(w io.Writer, err error) {
	if !core.IsUserFacing(err) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Error: %s\n  %v\n", core.FormatUserError(err), err)
}

var rootCmd = &cobra.Command{
	Use:           "ddport",
	Short:         "Validate and extract data download packages",
	Long:          "ddport checks data download packages against a platform's manifest, extracts the tables a participant can donate and walks through the donation flow.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr so stdout carries only results.
		logger = logging.New(cmd.ErrOrStderr(), logLevel, logFormat)
		slog.SetDefault(logger)

		switch output {
		case "json", "yaml":
		default:
			return fmt.Errorf("unsupported output format %q (want json or yaml)", output)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().StringVarP(&platform, "platform", "p", tiktok.Key, "Platform the package was downloaded from")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")

	extractCmd.Flags().Bool("all", false, "Run every registered pattern and report record counts per member")
	extractCmd.Flags().String("member", "", "Parse a single member with its registered pattern")
	runCmd.Flags().String("lang", core.DefaultLocale, "Locale of the prompts")

	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(runCmd)
}

func lookupPlatform() (*core.Platform, error) {
	p, ok := core.GetPlatform(platform)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownPlatform, platform)
	}
	return p, nil
}

// encode writes v to w in the selected output format.
func encode(w io.Writer, v any) error {
	if output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List registered platforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, p := range core.Platforms() {
			fmt.Fprintf(out, "%-10s %-10s %d tables\n", p.Key, p.Name, len(p.Tables))
		}
		return nil
	},
}

// validationReport is the serialised form of ddp.ValidationResult.
type validationReport struct {
	Archive     string  `json:"archive" yaml:"archive"`
	Status      int     `json:"status" yaml:"status"`
	Description string  `json:"description" yaml:"description"`
	Valid       bool    `json:"valid" yaml:"valid"`
	Manifest    string  `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	Prevalence  float64 `json:"prevalence" yaml:"prevalence"`
}

var validateCmd = &cobra.Command{
	Use:   "validate <zip>",
	Short: "Check whether a zip is a data download package of the platform",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupPlatform()
		if err != nil {
			return err
		}

		res := ddp.ValidateZip(p.Manifests, args[0])
		report := validationReport{
			Archive:     args[0],
			Status:      res.StatusCode,
			Description: res.Description,
			Valid:       res.Valid(),
			Prevalence:  res.Prevalence,
		}
		if res.Manifest != nil {
			report.Manifest = res.Manifest.ID
		}
		return encode(cmd.OutOrStdout(), report)
	},
}

// memberReport summarises one pattern run for extract --all.
type memberReport struct {
	Member  string `json:"member" yaml:"member"`
	Shape   string `json:"shape" yaml:"shape"`
	Records int    `json:"records" yaml:"records"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

type extractionReport struct {
	Archive string         `json:"archive" yaml:"archive"`
	Members []memberReport `json:"members" yaml:"members"`
}

var extractCmd = &cobra.Command{
	Use:   "extract <zip>",
	Short: "Extract the donation tables from a data download package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if member, _ := cmd.Flags().GetString("member"); member != "" {
			res, err := extractMember(args[0], member)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), res.Maps())
		}

		all, _ := cmd.Flags().GetBool("all")
		if all {
			report, err := extractAll(args[0])
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), report)
		}

		p, err := lookupPlatform()
		if err != nil {
			return err
		}
		return encode(cmd.OutOrStdout(), core.AssembleZip(args[0], p.Tables, logger))
	},
}

func extractAll(path string) (extractionReport, error) {
	archive, err := ddp.OpenArchive(path)
	if err != nil {
		return extractionReport{}, err
	}
	defer archive.Close()

	report := extractionReport{Archive: path}
	for _, res := range extract.New(archive, logger).ExtractAll(extract.All()) {
		m := memberReport{
			Member:  res.Member,
			Shape:   res.Shape.String(),
			Records: res.Len(),
		}
		if res.Err != nil {
			m.Error = res.Err.Error()
		}
		report.Members = append(report.Members, m)
	}
	return report, nil
}

// extractMember runs the pattern registered for member against the archive.
func extractMember(path, member string) (extract.Result, error) {
	m, ok := extract.Get(member)
	if !ok {
		return extract.Result{}, fmt.Errorf("no pattern registered for member %q", member)
	}

	archive, err := ddp.OpenArchive(path)
	if err != nil {
		return extract.Result{}, err
	}
	defer archive.Close()

	res := extract.New(archive, logger).Extract(m)
	if res.Err != nil {
		return extract.Result{}, res.Err
	}
	return res, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Walk through the donation flow in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupPlatform()
		if err != nil {
			return err
		}
		lang, _ := cmd.Flags().GetString("lang")
		lang = strings.ToLower(lang)

		flow := core.NewFlow(p, "cli", core.WithLogger(logger))
		term := newTerminal(cmd.InOrStdin(), cmd.ErrOrStderr(), lang)
		if err := core.Run(cmd.Context(), flow, term); err != nil {
			return err
		}

		consent, ok := flow.Consent()
		if !ok || consent.Kind != core.PayloadJSON {
			fmt.Fprintln(cmd.ErrOrStderr(), "Nothing was donated.")
			return nil
		}

		var v any
		if err := json.Unmarshal([]byte(consent.Value), &v); err != nil {
			return fmt.Errorf("decode consent: %w", err)
		}
		return encode(cmd.OutOrStdout(), v)
	},
}
