package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"storybook-client/internal/models"
	"storybook-client/internal/reader"
	"storybook-client/internal/story"
	"storybook-client/internal/ui"
)

// draftFlags binds the story creation fields to a cobra command.
type draftFlags struct {
	title       string
	childName   string
	childAge    int
	childGender string
	theme       string
	length      string
	interests   string
	imagePath   string
	public      bool
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "story title (optional)")
	cmd.Flags().StringVar(&f.childName, "child-name", "", "child's name")
	cmd.Flags().IntVar(&f.childAge, "child-age", 0, "child's age (3-12)")
	cmd.Flags().StringVar(&f.childGender, "child-gender", "", "boy, girl or other")
	cmd.Flags().StringVar(&f.theme, "theme", "", "story theme (see 'storybook options')")
	cmd.Flags().StringVar(&f.length, "length", "", "short, medium or long")
	cmd.Flags().StringVar(&f.interests, "interests", "", "comma-separated interests")
	cmd.Flags().StringVar(&f.imagePath, "image", "", "path to a photo of the child (max 5MB)")
	cmd.Flags().BoolVar(&f.public, "public", false, "make the story public")
}

func (f *draftFlags) draft() (models.StoryDraft, error) {
	draft := models.StoryDraft{
		Title:       f.title,
		ChildName:   f.childName,
		ChildAge:    f.childAge,
		ChildGender: f.childGender,
		Theme:       f.theme,
		StoryLength: f.length,
		IsPublic:    f.public,
	}
	if f.interests != "" {
		for _, it := range strings.Split(f.interests, ",") {
			if it = strings.TrimSpace(it); it != "" {
				draft.Interests = append(draft.Interests, it)
			}
		}
	}
	if f.imagePath != "" {
		data, err := os.ReadFile(f.imagePath)
		if err != nil {
			return draft, fmt.Errorf("reading image: %w", err)
		}
		draft.Image = &models.ImageAttachment{
			Filename: filepath.Base(f.imagePath),
			Data:     data,
		}
	}
	return draft, nil
}

func createCmd() *cobra.Command {
	var flags draftFlags
	var watch bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a new personalized story for generation",
		Long: `Submit a new personalized story for generation.

Example:
  storybook create --child-name Mia --child-age 6 --child-gender girl \
      --theme Adventure --length short --interests "Animals, Magic"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}
			draft, err := flags.draft()
			if err != nil {
				return err
			}
			created, err := current.stories.Create(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Println(ui.StoryLine(*created))

			if !watch {
				fmt.Printf("Generation started. Follow it with: storybook watch %s\n", created.ID)
				return nil
			}
			return watchStory(cmd, created.ID)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&watch, "watch", false, "poll until generation finishes")
	return cmd
}

func updateCmd() *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "update <story-id>",
		Short: "Re-submit an existing story with changed parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}
			draft, err := flags.draft()
			if err != nil {
				return err
			}
			updated, err := current.stories.Update(ctx, args[0], draft)
			if err != nil {
				return err
			}
			fmt.Println(ui.StoryLine(*updated))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}
			stories, err := current.stories.List(ctx)
			if err != nil {
				return err
			}
			if len(stories) == 0 {
				fmt.Println("No stories yet. Create one with 'storybook create'.")
				return nil
			}
			for _, s := range stories {
				fmt.Println(ui.StoryLine(s))
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <story-id>",
		Short: "Show one story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}
			s, err := current.stories.Get(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Print(ui.StoryDetail(*s))
			return nil
		},
	}
}

func readCmd() *cobra.Command {
	var pageNum int
	cmd := &cobra.Command{
		Use:   "read <story-id>",
		Short: "Read a story's pages in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}
			book, err := reader.Load(ctx, current.client, args[0], current.logger)
			if err != nil {
				return err
			}
			if book.Len() == 0 {
				fmt.Println("This story has no pages yet.")
				return nil
			}

			if pageNum > 0 {
				// Выход за границы - no-op, курсор остается где был.
				book.GoTo(pageNum - 1)
				fmt.Println(ui.Page(*book.Current(), book.Index(), book.Len()))
				return nil
			}
			for i, p := range book.Pages() {
				fmt.Println(ui.Page(p, i, book.Len()))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&pageNum, "page", 0, "show a single page (1-based)")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <story-id>",
		Short: "Poll a story until generation reaches a terminal state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.requireAuth(cmd.Context()); err != nil {
				return err
			}
			return watchStory(cmd, args[0])
		},
	}
}

func watchStory(cmd *cobra.Command, storyID string) error {
	poller := story.NewPoller(current.client, current.cfg.PollInterval, current.logger)
	result := poller.Run(cmd.Context(), storyID, func(s *models.Story) {
		fmt.Printf("%s %s\n", s.UpdatedAt.Format("15:04:05"), ui.StatusBadge(s.Status))
	})
	if result.Err != nil {
		if result.Story != nil {
			fmt.Printf("last known state: %s\n", ui.StatusBadge(result.Story.Status))
		}
		return fmt.Errorf("polling stopped: %w", result.Err)
	}
	if result.Story.Status == models.StatusCompleted {
		fmt.Printf("Done! Read it with: storybook read %s\n", result.Story.ID)
	} else {
		fmt.Println("Generation failed. You can re-submit with 'storybook update'.")
	}
	return nil
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <story-id>",
		Short: "Delete a story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}
			if err := current.stories.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func downloadCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "download <story-id>",
		Short: "Download the rendered story artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}
			if outPath == "" {
				outPath = args[0] + ".pdf"
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			if err := current.client.DownloadStory(ctx, args[0], f); err != nil {
				return err
			}
			fmt.Printf("Saved to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output file path")
	return cmd
}

func pdfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pdf <story-id>",
		Short: "Print the URL of the story's rendered PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := current.requireAuth(ctx); err != nil {
				return err
			}
			url, err := current.client.GetStoryPDF(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}
}

func optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the available themes, lengths, genders and interests",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Themes:")
			for _, t := range story.Themes {
				fmt.Printf("  %s\n", t)
			}
			fmt.Println("Lengths:")
			for _, l := range story.Lengths {
				fmt.Printf("  %-8s %s\n", l.Value, l.Label)
			}
			fmt.Printf("Genders: %s\n", strings.Join(story.Genders, ", "))
			fmt.Printf("Interest ideas: %s\n", strings.Join(story.InterestSuggestions, ", "))
			return nil
		},
	}
}
