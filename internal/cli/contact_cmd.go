package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"portfolio/internal/client"
)

func newContactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Contact form operations",
	}
	cmd.AddCommand(newContactSendCmd(app))
	return cmd
}

func newContactSendCmd(app *App) *cobra.Command {
	var (
		url    string
		fields = map[string]*string{}
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit a project brief through the public contact endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := url
			if base == "" {
				base = app.Config.Site.URL
			}

			form := client.NewForm(app.NewSender(base), app.Config.Site.ContactEmail)
			for name, v := range fields {
				if err := form.Set(name, *v); err != nil {
					return err
				}
			}

			err := form.Submit(cmd.Context())
			out := cmd.OutOrStdout()

			if errs := form.Errors(); len(errs) > 0 {
				names := make([]string, 0, len(errs))
				for name := range errs {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(out, "  %s: %s\n", name, errs[name])
				}
				return fmt.Errorf("submission is invalid")
			}

			fmt.Fprintf(out, "status: %s\n", form.Status())
			if b := form.Banner(); b != "" {
				fmt.Fprintln(out, b)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&url, "url", "", "site base URL (default: site.url from config)")
	for _, f := range []struct{ name, usage string }{
		{"name", "your name"},
		{"email", "reply address"},
		{"phone", "phone number (optional)"},
		{"project-type", "web, ml, mobile or other"},
		{"budget", "under-500, 500-1000, 1000-5000 or 5000+"},
		{"timeline", "urgent, week, month or flexible"},
		{"requirements", "what you need built (at least 10 characters)"},
	} {
		fields[fieldName(f.name)] = flags.String(f.name, "", f.usage)
	}
	return cmd
}

// flag names are kebab-case, form fields use the JSON names
func fieldName(flag string) string {
	if flag == "project-type" {
		return "projectType"
	}
	return flag
}
