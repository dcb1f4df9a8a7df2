package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/lularocha/glossary-builder/internal/app"
	"github.com/lularocha/glossary-builder/internal/service/glossary"
)

func expandCMD() *cobra.Command {
	var (
		term       string
		definition string
		seed       string
		lang       string
	)

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand one term into paragraphs and sources, printed as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			svc, err := app.NewGlossaryService(cmd.Context(), cfg.LLM, logger)
			if err != nil {
				return err
			}

			input := glossary.ExpandInput{Term: term, Definition: definition, SeedWord: seed}
			if lang != "" {
				input.DetectedLanguage = &lang
			}

			content, err := svc.ExpandTerm(cmd.Context(), input)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(content)
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "term to expand (required)")
	cmd.Flags().StringVar(&definition, "definition", "", "short definition of the term (required)")
	cmd.Flags().StringVar(&seed, "seed", "", "seed word of the glossary (required)")
	cmd.Flags().StringVar(&lang, "lang", "", "language to write in (default English)")
	_ = cmd.MarkFlagRequired("term")
	_ = cmd.MarkFlagRequired("definition")
	_ = cmd.MarkFlagRequired("seed")

	return cmd
}
