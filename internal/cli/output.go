package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/eddo81/wpkit/internal/ui"
	"github.com/eddo81/wpkit/pkg/models"
)

// printIntro shows where the project will be created.
func printIntro(w io.Writer, theme *ui.Theme, cwd string) {
	_, _ = fmt.Fprintln(w, theme.RenderCard(
		"You're about to run the setup script for your project in this directory:",
		theme.Muted.Render(cwd),
	))
}

// summaryFields lists the project details shown before confirmation.
func summaryFields(name, author, email, description string, features []models.FeatureFlag, entrypoints []string) []ui.Field {
	list := make([]string, len(features))
	for i, f := range features {
		list[i] = string(f)
	}
	featureText := strings.Join(list, ", ")
	if featureText == "" {
		featureText = "none"
	}
	fields := []ui.Field{
		{Key: "Project name", Value: name},
		{Key: "Project features", Value: featureText},
		{Key: "Entrypoints", Value: strings.Join(entrypoints, ", ")},
	}
	if author != "" {
		fields = append(fields, ui.Field{Key: "Author", Value: models.Author{Name: author, Email: email}.Display()})
	}
	if description != "" {
		fields = append(fields, ui.Field{Key: "Description", Value: description})
	}
	return fields
}

// printSummary shows the collected project details.
func printSummary(w io.Writer, theme *ui.Theme, fields []ui.Field) {
	_, _ = fmt.Fprintln(w, theme.RenderCard("The project details are as follows:", theme.RenderFields(fields)...))
}

// printLetsGo announces the start of the pipeline.
func printLetsGo(w io.Writer, theme *ui.Theme) {
	_, _ = fmt.Fprintln(w, theme.Title.Render("Let's get started, it might take a while..."))
}

// printError shows the "Error - <detail>" card.
func printError(w io.Writer, theme *ui.Theme, detail string) {
	_, _ = fmt.Fprintln(w, theme.RenderError(detail))
}

// outroMarkdown returns the closing instructions for folder.
func outroMarkdown(folder string, installed bool, files int) string {
	var b strings.Builder
	b.WriteString("# Your project is now ready!\n\n")
	fmt.Fprintf(&b, "%d files were created in `%s`.\n\n", files, folder)
	if installed {
		fmt.Fprintf(&b, "Please cd into the `%s` folder and run `npm start`.\n", folder)
	} else {
		fmt.Fprintf(&b, "Please cd into the `%s` folder and run `npm install`. "+
			"After the required dependencies have been installed run `npm start` to start developing.\n", folder)
	}
	return b.String()
}

// printOutro renders the closing instructions as markdown, falling back
// to the raw text if rendering fails.
func printOutro(w io.Writer, theme *ui.Theme, hm *ui.HeadlessManager, md string) {
	out, err := ui.RenderMarkdown(md, theme, hm)
	if err != nil {
		out = md
	}
	_, _ = fmt.Fprint(w, out)
}
