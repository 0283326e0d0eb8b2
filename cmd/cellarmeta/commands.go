package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mnov88/marked/pkg/bulk"
	"github.com/mnov88/marked/pkg/citation"
	"github.com/mnov88/marked/pkg/extract"
	"github.com/mnov88/marked/pkg/mapping"
	"github.com/mnov88/marked/pkg/metrics"
	"github.com/mnov88/marked/pkg/watch"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract metadata from one notice",
		Long: `Extract metadata from a single notice file or folder.

The record is written as <celex>_metadata.json next to the notice, or into
--output. In folder mode a TYPE-YEAR-NUMBER folder name (REG-2016-679)
selects the act when the notice embeds several.

Example:
  cellarmeta extract --xml notices/REG-2016-679/cellar_tree_notice.xml
  cellarmeta extract --xml tree.xml --celex 32016R0679 --output out/
  cellarmeta extract --folder notices/REG-2016-679`,
		RunE: func(cmd *cobra.Command, args []string) error {
			xmlPath, _ := cmd.Flags().GetString("xml")
			folder, _ := cmd.Flags().GetString("folder")
			celex, _ := cmd.Flags().GetString("celex")
			outputDir, _ := cmd.Flags().GetString("output")

			if (xmlPath == "") == (folder == "") {
				return fmt.Errorf("exactly one of --xml or --folder is required")
			}

			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			assembler, err := application.assembler()
			if err != nil {
				return err
			}
			processor := bulk.NewProcessor(assembler, bulk.FileSink{OutputDirectory: outputDir}, nil, application.logger)

			var entry bulk.Entry
			if xmlPath != "" {
				fmt.Printf("Processing single file: %s\n", xmlPath)
				entry = processor.ProcessFile(xmlPath, celex)
			} else {
				fmt.Printf("Processing folder: %s\n", filepath.Base(folder))
				entry = processor.ProcessFolder(folder, application.config.NoticeFilename)
			}

			if entry.Status != bulk.StatusSuccess {
				fmt.Printf("%s Failed: %s\n", failureMark, entry.Error)
				return fmt.Errorf("extraction failed")
			}
			fmt.Printf("%s Success! Output: %s\n", successMark, entry.OutputPath)
			if entry.Mode == extract.ModeTreeFallback {
				fmt.Println("  warning: no main work found, fields were searched across the whole notice")
			}
			return nil
		},
	}

	cmd.Flags().String("xml", "", "Notice XML file to process")
	cmd.Flags().String("folder", "", "Folder holding the notice file")
	cmd.Flags().String("celex", "", "CELEX identifier of the act (single file mode)")
	cmd.Flags().StringP("output", "o", "", "Output directory (default: next to the notice)")

	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Extract metadata from every notice under a directory",
		Long: `Scan a directory tree for notice files and extract each of them.

Folders named after a CELEX identifier are skipped when their record already
exists. Folders named TYPE-YEAR-NUMBER can be filtered by type and year.

Example:
  cellarmeta batch --root notices --limit 5
  cellarmeta batch --root notices --type REG --type DIR --year 2016 --workers 8
  cellarmeta batch --root notices --report-json report.json --metrics-file cellar.prom`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			limit, _ := cmd.Flags().GetInt("limit")
			skipExisting, _ := cmd.Flags().GetBool("skip-existing")
			types, _ := cmd.Flags().GetStringSlice("type")
			years, _ := cmd.Flags().GetStringSlice("year")
			outputDir, _ := cmd.Flags().GetString("output")
			reportPath, _ := cmd.Flags().GetString("report-json")
			metricsPath, _ := cmd.Flags().GetString("metrics-file")

			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			assembler, err := application.assembler()
			if err != nil {
				return err
			}

			batchConfig := bulk.DefaultConfig()
			batchConfig.Root = root
			batchConfig.NoticeFilename = application.config.NoticeFilename
			batchConfig.Limit = limit
			batchConfig.SkipExisting = skipExisting
			batchConfig.Workers = application.config.Workers
			if cmd.Flags().Changed("workers") {
				batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
			}
			batchConfig.TypeFilter = types
			batchConfig.YearFilter = years

			batchMetrics := metrics.New()
			processor := bulk.NewProcessor(assembler, bulk.FileSink{OutputDirectory: outputDir}, batchMetrics, application.logger)
			runner := bulk.NewRunner(processor, batchConfig, application.logger)
			if application.verbose {
				runner.OnProgress(func(done int, total int, entry bulk.Entry) {
					fmt.Println(bulk.FormatEntry(done, total, entry))
				})
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Scanning directory: %s\n", root)
			report, runErr := runner.Run(ctx)
			if report == nil {
				return runErr
			}

			fmt.Print(bulk.FormatReport(report))
			fmt.Printf("%s Success: %d\n%s Failed:  %d\n%s Skipped: %d\n",
				successMark, report.Succeeded, failureMark, report.Failed, skipMark, report.Skipped)

			if reportPath != "" {
				if err := bulk.WriteReportJSON(report, reportPath); err != nil {
					return err
				}
				fmt.Printf("Report written to: %s\n", reportPath)
			}
			if metricsPath != "" {
				if err := batchMetrics.WriteToTextfile(metricsPath); err != nil {
					return err
				}
			}

			if runErr != nil {
				return runErr
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d notices failed", report.Failed, report.Discovered)
			}
			return nil
		},
	}

	cmd.Flags().StringP("root", "r", "", "Root directory to scan recursively")
	cmd.Flags().Int("limit", 0, "Max number of notices to process (0 = all)")
	cmd.Flags().Bool("skip-existing", true, "Skip notices whose record already exists")
	cmd.Flags().Int("workers", 0, "Concurrent extractions (default: env CELLAR_WORKERS or CPU count)")
	cmd.Flags().StringSlice("type", []string{}, "Only folders of these types (REG, DIR, DEC-IMPL, ...)")
	cmd.Flags().StringSlice("year", []string{}, "Only folders of these years")
	cmd.Flags().StringP("output", "o", "", "Output directory (default: next to each notice)")
	cmd.Flags().String("report-json", "", "Write the batch report as JSON to this file")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Extract notices as they appear under a directory",
		Long: `Watch a directory tree and extract every notice file that is created or
rewritten, once it has stopped changing. Metrics and a health check are
served on --metrics-addr.

Example:
  cellarmeta watch --root downloads --metrics-addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
			outputDir, _ := cmd.Flags().GetString("output")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			assembler, err := application.assembler()
			if err != nil {
				return err
			}

			watchMetrics := metrics.New()
			processor := bulk.NewProcessor(assembler, bulk.FileSink{OutputDirectory: outputDir}, watchMetrics, application.logger)

			// The handler runs on the watch goroutine only.
			handled := 0
			watcher := watch.New(watch.Config{
				Root:     root,
				Filename: application.config.NoticeFilename,
				Debounce: debounce,
			}, func(path string) {
				handled++
				entry := processor.ProcessFile(path, "")
				fmt.Println(bulk.FormatEntry(handled, handled, entry))
			}, application.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := watcher.Start(ctx); err != nil {
				return err
			}
			fmt.Printf("Watching %s (Ctrl+C to stop)\n", root)

			group, groupCtx := errgroup.WithContext(ctx)
			if metricsAddr != "" {
				group.Go(func() error {
					return watch.Serve(groupCtx, metricsAddr, watch.NewRouter(watchMetrics, watcher.Status), application.logger)
				})
			}
			group.Go(func() error {
				<-groupCtx.Done()
				return nil
			})

			err = group.Wait()
			_ = watcher.Stop()
			fmt.Printf("\nStopped after %d notices\n", watcher.Status().Handled)
			return err
		},
	}

	cmd.Flags().StringP("root", "r", "", "Root directory to watch recursively")
	cmd.Flags().String("metrics-addr", "", "Serve /metrics and /healthz on this address, e.g. :9090")
	cmd.Flags().StringP("output", "o", "", "Output directory (default: next to each notice)")
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before a changed notice is extracted")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

func mappingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Inspect the field mapping",
	}

	validate := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a mapping declares every field the extractor reads",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("mapping")
			if len(args) > 0 {
				path = args[0]
			}

			fieldMapping, err := loadMapping(path)
			if err != nil {
				fmt.Printf("%s %v\n", failureMark, err)
				return fmt.Errorf("mapping is invalid")
			}
			if err := fieldMapping.Validate(extract.Requirements()); err != nil {
				fmt.Printf("%s %v\n", failureMark, err)
				return fmt.Errorf("mapping is incomplete")
			}

			fmt.Printf("%s Mapping OK: %s\n", successMark, fieldMapping.Source())
			fmt.Printf("  Fields: %d | Relations: %d | Case-law categories: %d\n",
				len(fieldMapping.FieldKeys()), len(fieldMapping.Relations), len(fieldMapping.CaseLaw))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a mapping (default: the embedded one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("mapping")
			if len(args) > 0 {
				path = args[0]
			}

			var data []byte
			var err error
			if path == "" {
				data, err = mapping.DefaultYAML()
			} else {
				data, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("failed to read mapping: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	cmd.AddCommand(validate, show)
	return cmd
}

func articleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "article REF...",
		Short: "Parse article references as they appear in case-law annotations",
		Long: `Parse article references and print their structured form.

Example:
  cellarmeta article A58P5 "{AR|http://...} 6 {PA|http://...} 1"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(citation.ParseArticleReferences(args), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode references: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
