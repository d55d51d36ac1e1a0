package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskdeck/internal/app"
	"github.com/runoshun/taskdeck/internal/domain"
	"github.com/runoshun/taskdeck/internal/usecase"
)

// newCategoryCommand creates the category command group.
func newCategoryCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories", "cat"},
		Short:   "Manage categories",
		Long: `List, create, rename and delete categories.

Category names are unique on the backend. Deleting a category keeps its
tasks; they become uncategorized.`,
	}

	cmd.AddCommand(
		newCategoryListCommand(c),
		newCategoryNewCommand(c),
		newCategoryRenameCommand(c),
		newCategoryDeleteCommand(c),
	)
	return cmd
}

func newCategoryListCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ListCategoriesUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListCategoriesInput{})
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), output, out.Categories, func(w io.Writer) {
				printCategoryList(w, out.Categories)
			})
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

// printCategoryList prints categories as a table.
func printCategoryList(w io.Writer, categories []domain.Category) {
	if len(categories) == 0 {
		_, _ = fmt.Fprintln(w, "No categories.")
		return
	}

	tw := newTabWriter(w)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tNAME\tUSAGE")
	for _, category := range categories {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", category.ID, category.Name, category.UsageCount)
	}
}

func newCategoryNewCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.CreateCategoryUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CreateCategoryInput{Name: args[0]})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created category %s: %s\n", out.Category.ID, out.Category.Name)
			return nil
		},
	}
}

func newCategoryRenameCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id|name> <new-name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.RenameCategoryUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RenameCategoryInput{Category: args[0], Name: args[1]})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %s: %s -> %s\n", out.Category.ID, out.OldName, out.Category.Name)
			return nil
		},
	}
}

func newCategoryDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|name>",
		Aliases: []string{"rm"},
		Short:   "Delete a category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.DeleteCategoryUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteCategoryInput{Category: args[0]})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s: %s\n", out.Category.ID, out.Category.Name)
			return nil
		},
	}
}
