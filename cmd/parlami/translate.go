package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/parlami/internal/languages"
	"github.com/at-ishikawa/parlami/internal/translation"
)

func newTranslateCommand() *cobra.Command {
	var (
		from      string
		to        string
		save      bool
		breakdown bool
	)
	command := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate text, from your native language to the one you learn by default",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			if breakdown {
				if from != "" && from != languages.English.Code {
					return fmt.Errorf("--breakdown only translates from %s", languages.English.Code)
				}
				from = languages.English.Code
			}
			if p := ws.session.Profile(); p != nil {
				if from == "" {
					from = p.NativeLanguage
				}
				if to == "" {
					to = p.TargetLanguage
				}
			}
			if from == "" {
				from = languages.English.Code
			}
			if to == "" {
				to = "it"
			}
			for _, code := range []string{from, to} {
				if !languages.IsNative(code) {
					return fmt.Errorf("unsupported language: %s", code)
				}
			}

			translator, client := ws.newTranslator()
			defer func() {
				_ = client.Close()
			}()

			ctx := cmd.Context()
			text := strings.Join(args, " ")
			var (
				result translation.Translation
				words  []translation.WordBreakdown
			)
			if breakdown {
				sentence, err := translator.BuildSentence(ctx, text, to)
				if err != nil {
					return fmt.Errorf("translator.BuildSentence > %w", err)
				}
				result, words = sentence.Translation, sentence.Words
			} else {
				result, err = translator.Translate(ctx, text, from, to)
				if err != nil {
					return fmt.Errorf("translator.Translate > %w", err)
				}
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s → %s\n%s\n", languages.Label(from), languages.Label(to), result.Translated)
			if result.Cached {
				_, _ = fmt.Fprintln(out, "(cached)")
			}
			showBreakdown(out, words)
			if !save {
				return nil
			}
			saved, err := ws.savedTranslations().Save(ctx, result)
			if err != nil {
				return fmt.Errorf("savedTranslations.Save > %w", err)
			}
			_, _ = fmt.Fprintf(out, "Saved as %s\n", saved.ID)
			return nil
		},
	}
	flags := command.Flags()
	flags.StringVar(&from, "from", "", "source language code")
	flags.StringVar(&to, "to", "", "target language code")
	flags.BoolVar(&save, "save", false, "save the translation")
	flags.BoolVar(&breakdown, "breakdown", false, "break an English sentence down word by word")
	return command
}

func newSavedCommand() *cobra.Command {
	savedCommand := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved translations",
	}

	savedCommand.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved translations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			saved, err := ws.savedTranslations().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("savedTranslations.List > %w", err)
			}
			showTranslations(cmd.OutOrStdout(), saved)
			return nil
		},
	})

	savedCommand.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search saved translations by either text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			matched, err := ws.savedTranslations().Search(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("savedTranslations.Search > %w", err)
			}
			showTranslations(cmd.OutOrStdout(), matched)
			return nil
		},
	})

	savedCommand.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved translation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			deleted, err := ws.savedTranslations().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("savedTranslations.Delete > %w", err)
			}
			if !deleted {
				return fmt.Errorf("no saved translation with id %s", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	})

	return savedCommand
}

func showTranslations(out io.Writer, saved []translation.Translation) {
	if len(saved) == 0 {
		_, _ = fmt.Fprintln(out, "No saved translations.")
		return
	}
	for _, t := range saved {
		_, _ = fmt.Fprintf(out, "%s  %s [%s] → %s [%s]  (%s)\n",
			t.Time().UTC().Format("2006-01-02"),
			t.Original, t.FromLang,
			t.Translated, t.ToLang,
			t.ID,
		)
	}
}

func showBreakdown(out io.Writer, words []translation.WordBreakdown) {
	for _, w := range words {
		translated := w.Translated
		if translated == "" {
			translated = "-"
		}
		_, _ = fmt.Fprintf(out, "  %s → %s (%s)\n", w.English, translated, w.Part)
	}
}
