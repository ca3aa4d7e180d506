package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"convertly/internal/api"
	"convertly/internal/convert"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var fromFormat string
	var toFormat string
	var userEmail string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Upload files and convert them, polling progress until done",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			uploads := make([]api.Upload, 0, len(args))
			var total uint64
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open %s: %w", path, err)
				}
				defer f.Close()
				if info, err := f.Stat(); err == nil {
					total += uint64(info.Size())
				}
				uploads = append(uploads, api.Upload{Name: filepath.Base(path), Content: f})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploading %d file(s), %s total\n",
				len(uploads), humanize.Bytes(total))

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			orch := convert.NewOrchestrator(client, ctx.notifier(), cfg.PollInterval(), ctx.logger())
			if err := orch.Convert(runCtx, uploads, fromFormat, toFormat, userEmail); err != nil {
				return err
			}
			orch.Wait()

			tasks := orch.Tasks()
			if jsonOutput {
				if err := writeJSON(cmd, tasks); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderTaskTable(tasks))
			}

			failed := 0
			for _, task := range tasks {
				if task.Status == convert.StatusError {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d conversion(s) failed", failed, len(tasks))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFormat, "from", "", "Source format (for example pdf)")
	cmd.Flags().StringVar(&toFormat, "to", "", "Target format (for example docx)")
	cmd.Flags().StringVar(&userEmail, "email", "", "Optional email for completion notification")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the final task state as JSON")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func renderTaskTable(tasks []convert.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		status := string(task.Status)
		if task.Message != "" {
			status += " (" + task.Message + ")"
		}
		rows = append(rows, []string{
			task.FileName,
			strings.ToUpper(task.FromFormat),
			strings.ToUpper(task.ToFormat),
			fmt.Sprintf("%d%%", task.Progress),
			task.FileSize,
			status,
		})
	}
	return renderTable(
		[]string{"File", "From", "To", "Progress", "Size", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}
