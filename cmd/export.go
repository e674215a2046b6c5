package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/sorubot/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved quiz as PDF or XLSX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		answers, _ := cmd.Flags().GetBool("answers")

		if formatName == "" && out != "" {
			formatName = filepath.Ext(out)
		}
		if formatName == "" {
			formatName = string(export.FormatPDF)
		}
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		q, _, err := s.QuizRepo().Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("load quiz: %w", err)
		}

		if out == "" {
			out = exportName(q.Title, format)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err := export.Write(f, q, format, export.Options{AnswerKey: answers}); err != nil {
			f.Close()
			return fmt.Errorf("export: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Println("Wrote", out)
		return nil
	},
}

// exportName derives a file name from the quiz title.
func exportName(title string, format export.Format) string {
	base := strings.TrimSuffix(title, filepath.Ext(title))
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(base))
	if base == "" {
		base = "quiz"
	}
	return base + "." + string(format)
}

func init() {
	exportCmd.Flags().StringP("format", "f", "", "Export format: pdf or xlsx (default: from --out, else pdf)")
	exportCmd.Flags().StringP("out", "o", "", "Output file (default: derived from the quiz title)")
	exportCmd.Flags().Bool("answers", false, "Include the answer key and explanations")
}
