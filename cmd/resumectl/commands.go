package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"resume-roaster/internal/bootstrap"
	"resume-roaster/internal/export"
	"resume-roaster/internal/extract"
	"resume-roaster/internal/shared/config"
	"resume-roaster/internal/transform"
)

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Extract, roast, analyze, rewrite and export resumes from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var preserveFormat bool
	rewriteCmd := &cobra.Command{
		Use:   "rewrite <file>",
		Short: "Rewrite a resume with the configured model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readResume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			svc, err := transformService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			out, err := svc.Rewrite(cmd.Context(), text, transform.RewriteOptions{
				PreserveFormat: preserveFormat,
				OriginalFormat: strings.TrimPrefix(filepath.Ext(args[0]), "."),
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	rewriteCmd.Flags().BoolVar(&preserveFormat, "preserve-format", false, "keep the original section layout")

	var (
		format  string
		outPath string
	)
	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a resume or plain-text file as txt, docx or pdf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			text, err := readText(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc, err := export.Render(f, filepath.Base(args[0]), text)
			if err != nil {
				return err
			}
			dest := outPath
			if dest == "" {
				dest = doc.FileName
			}
			if err := os.WriteFile(dest, doc.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", dest, len(doc.Data))
			return err
		},
	}
	exportCmd.Flags().StringVar(&format, "format", "txt", "output format: txt, docx or pdf")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default: derived from input name)")

	root.AddCommand(
		&cobra.Command{
			Use:   "extract <file>",
			Short: "Print the text of a PDF or DOCX resume",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				text, err := readResume(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			},
		},
		&cobra.Command{
			Use:   "roast <file>",
			Short: "Roast a resume with the configured model",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				text, err := readResume(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				svc, err := transformService(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				out, err := svc.Roast(cmd.Context(), text)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			},
		},
		&cobra.Command{
			Use:   "analyze <file>",
			Short: "Score a resume and print the analysis as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				text, err := readResume(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				svc, err := transformService(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				analysis, err := svc.Analyze(cmd.Context(), text)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(analysis)
			},
		},
		rewriteCmd,
		exportCmd,
		&cobra.Command{
			Use:   "purge",
			Short: "Run one retention sweep against the configured store",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := bootstrap.BuildServices(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer app.Close()
				n, err := app.ResumesService.PurgeExpired(cmd.Context(), time.Now())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "purged %d resume(s)\n", n)
				return err
			},
		},
	)
	return root
}

func transformService(ctx context.Context, cfg config.Config) (*transform.Service, error) {
	app, err := bootstrap.BuildServices(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return app.TransformService, nil
}

// mimeForPath maps a file extension to one of the accepted upload types.
func mimeForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extract.MimePDF, nil
	case ".docx":
		return extract.MimeDOCX, nil
	default:
		return "", fmt.Errorf("%s: %w", path, extract.ErrUnsupportedType)
	}
}

func readResume(ctx context.Context, path string) (string, error) {
	mimeType, err := mimeForPath(path)
	if err != nil {
		return "", err
	}
	return extract.ExtractFile(ctx, path, mimeType)
}

// readText extracts PDF and DOCX files and reads anything else verbatim.
func readText(ctx context.Context, path string) (string, error) {
	if _, err := mimeForPath(path); err == nil {
		return readResume(ctx, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
