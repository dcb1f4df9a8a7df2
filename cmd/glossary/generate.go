package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lularocha/glossary-builder/internal/app"
	"github.com/lularocha/glossary-builder/internal/service/export"
	"github.com/lularocha/glossary-builder/internal/service/glossary"
)

func generateCMD() *cobra.Command {
	var (
		seed   string
		title  string
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a glossary and write it as Markdown or Word",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			svc, err := app.NewGlossaryService(cmd.Context(), cfg.LLM, logger)
			if err != nil {
				return err
			}

			input := glossary.GenerateInput{SeedWord: seed}
			if title != "" {
				input.Title = &title
			}

			g, err := svc.Generate(cmd.Context(), input)
			if err != nil {
				return err
			}

			exporter := export.NewService()
			if out == "" && f == export.FormatDocx {
				out = exporter.Filename(g, f)
			}

			write := func(w io.Writer) error { return exporter.Write(w, g, f) }
			if out == "" {
				return write(cmd.OutOrStdout())
			}
			if err := writeFile(out, write); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d terms to %s\n", len(g.Terms), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&seed, "seed", "", "seed word (required)")
	cmd.Flags().StringVar(&title, "title", "", "optional glossary title")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout for md)")
	cmd.Flags().StringVar(&format, "format", "md", "md or docx")
	_ = cmd.MarkFlagRequired("seed")

	return cmd
}
