package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	appreview "github.com/bryanwahyu/ai-code-reviewer/internal/application/review"
	"github.com/bryanwahyu/ai-code-reviewer/internal/config"
	"github.com/bryanwahyu/ai-code-reviewer/internal/domain/review"
	"github.com/bryanwahyu/ai-code-reviewer/internal/infra/ai"
	"github.com/bryanwahyu/ai-code-reviewer/internal/infra/ai/prompt"
	"github.com/bryanwahyu/ai-code-reviewer/internal/infra/reviewapi"
	"github.com/bryanwahyu/ai-code-reviewer/internal/logger"
)

var (
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

// reviewer is satisfied by both the in-process service and the HTTP client.
type reviewer interface {
	Review(ctx context.Context, code string) (review.Result, error)
}

type usageError struct{ error }

func (u usageError) Unwrap() error { return u.error }

func isUsageError(err error) bool {
	var u usageError
	return errors.As(err, &u)
}

type reviewOptions struct {
	server     string
	configPath string
	raw        bool
	style      string
	width      int
	timeout    time.Duration
}

func newReviewCmd() *cobra.Command {
	opts := &reviewOptions{}
	cmd := &cobra.Command{
		Use:   "review [file]",
		Short: "Review code from a file or stdin",
		Long: `Review code from a file, or from stdin when no file (or "-") is given.

With --server the code is posted to a running reviewer at <server>/ai/get-review.
Without it the provider configured in config.yaml / the environment is called directly.

Examples:
  reviewctl review main.go
  cat util.py | reviewctl review --server http://localhost:5000
  reviewctl review --raw sort.c > review.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.server, "server", "s", "", "base URL of a running review server")
	f.StringVarP(&opts.configPath, "config", "c", "config.yaml", "config file for in-process reviews")
	f.BoolVar(&opts.raw, "raw", false, "print the markdown without rendering")
	f.StringVar(&opts.style, "style", "auto", "glamour style: auto, dark, light, notty")
	f.IntVar(&opts.width, "width", 100, "word wrap width for rendered output")
	f.DurationVar(&opts.timeout, "timeout", 0, "give up after this long (0 waits for the provider)")
	return cmd
}

func runReview(cmd *cobra.Command, args []string, opts *reviewOptions) error {
	code, err := readCode(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	rv, err := newReviewer(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := rv.Review(ctx, code)
	if err != nil {
		if errors.Is(err, review.ErrCodeRequired) {
			return usageError{err}
		}
		return err
	}

	if res.Refused {
		warnColor.Fprintln(cmd.ErrOrStderr(), "input looks conversational; it was not sent to the model")
	}

	text := res.Text
	if !opts.raw {
		text, err = renderMarkdown(text, opts.style, opts.width)
		if err != nil {
			return err
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	dimColor.Fprintf(cmd.ErrOrStderr(), "\nreviewed %d bytes in %s\n", len(code), time.Since(start).Round(time.Millisecond))
	return nil
}

func readCode(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", usageError{fmt.Errorf("read %s: %w", args[0], err)}
	}
	return string(b), nil
}

func newReviewer(ctx context.Context, opts *reviewOptions, errOut io.Writer) (reviewer, error) {
	if opts.server != "" {
		return reviewapi.New(opts.server, opts.timeout), nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, usageError{err}
	}
	gen, err := ai.NewGenerator(ctx, cfg.AI)
	if err != nil {
		return nil, err
	}
	instruction, err := prompt.LoadInstruction(cfg.AI.SystemPromptFile)
	if err != nil {
		return nil, err
	}
	// Only warnings and errors reach the terminal; the review owns stdout.
	log := logger.New(logger.Config{Level: "warn", Format: cfg.Log.Format}, errOut)
	return appreview.NewService(gen, instruction, log, nil), nil
}
