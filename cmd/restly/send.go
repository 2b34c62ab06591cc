package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mainbong/restly/internal/composer"
	"github.com/mainbong/restly/internal/httpclient"
	"github.com/mainbong/restly/internal/preview"
	"github.com/mainbong/restly/internal/terminal"
)

type sendOptions struct {
	url         string
	method      string
	contentType string
	body        string
	bodyFile    string
	pretty      bool
}

var sendOpts sendOptions

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a single request and print the response",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(cmd.Context(), newHTTPClient(), sendOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	flags := sendCmd.Flags()
	flags.StringVar(&sendOpts.url, "url", "", "target URL (absolute)")
	flags.StringVarP(&sendOpts.method, "method", "X", "", "HTTP method (defaults to the configured default_method)")
	flags.StringVarP(&sendOpts.contentType, "content-type", "t", "", "request content type (defaults to the configured default_content_type)")
	flags.StringVarP(&sendOpts.body, "body", "d", "", "request body")
	flags.StringVar(&sendOpts.bodyFile, "body-file", "", "read the request body from a file")
	flags.BoolVar(&sendOpts.pretty, "pretty", false, "pretty-print JSON, XML and HTML bodies")
	sendCmd.MarkFlagsMutuallyExclusive("body", "body-file")
}

// consoleAlerts prints composer alerts instead of showing a dialog.
type consoleAlerts struct {
	printer *terminal.Printer
}

func (a consoleAlerts) Alert(_ context.Context, message, title, _ string) error {
	if title == composer.TitleResponseHeader {
		a.printer.Headers(message)
		return nil
	}
	a.printer.Error(title, message)
	return nil
}

func runSend(ctx context.Context, client httpclient.HTTPClient, opts sendOptions, stdout, stderr io.Writer) error {
	body := opts.body
	if opts.bodyFile != "" {
		data, err := os.ReadFile(opts.bodyFile)
		if err != nil {
			return fmt.Errorf("failed to read body file: %w", err)
		}
		body = string(data)
	}

	methodName := opts.method
	contentType := opts.contentType
	if cfg != nil {
		if methodName == "" {
			methodName = cfg.DefaultMethod
		}
		if contentType == "" {
			contentType = cfg.DefaultContentType
		}
	}
	var method composer.Method
	if methodName != "" {
		parsed, err := composer.ParseMethod(methodName)
		if err != nil {
			return err
		}
		method = parsed
	}

	c := composer.NewComposerWithClient(client, consoleAlerts{printer: terminal.NewPrinter(stderr, 0)})
	c.SetURL(opts.url)
	c.SetMethod(method)
	c.SetContentType(contentType)
	c.SetBody(body)

	result := c.Submit(ctx)
	if !result.OK() {
		return errRequestFailed
	}

	out := terminal.NewPrinter(stdout, 0)
	out.Headers(result.Response.HeaderSummary)
	out.Divider()
	responseBody := result.Response.Body
	if opts.pretty {
		responseBody = preview.Render(result.Response.ContentType, responseBody)
	}
	out.Section("Body", responseBody)
	return nil
}
