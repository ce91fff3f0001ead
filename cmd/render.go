package cmd

import (
	"context"
	"fmt"
	"html/template"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/paperdesk/internal/dashboard"
	"github.com/ziadkadry99/paperdesk/internal/progress"
	"github.com/ziadkadry99/paperdesk/internal/router"
	"github.com/ziadkadry99/paperdesk/internal/views"
)

var renderAll bool

var renderCmd = &cobra.Command{
	Use:   "render [hash]",
	Short: "Render a dashboard route to stdout",
	Long: `Resolves a hash route (for example "#papers" or "#paper/42") against the
backend and prints the resulting markup. With --all every page is rendered in
turn, each preceded by an HTML comment naming its route.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if renderAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}

		v := views.New(newClient(cfg, log), viewOptions(cfg, log))
		out := cmd.OutOrStdout()
		if !renderAll {
			return renderHash(cmd.Context(), v, log, out, args[0])
		}
		return renderPages(cmd.Context(), v, log, out, progress.NewReporter(cmd.ErrOrStderr(), "Rendering"))
	},
}

// oneShot is the container of a render whose output goes straight to a writer.
type oneShot struct{}

func (oneShot) SetContent(template.HTML) error { return nil }

func renderHash(ctx context.Context, v *views.Views, log logrus.FieldLogger, w io.Writer, hash string) error {
	rt := router.New(dashboard.NewRegistry(v), oneShot{}, log)
	_, err := fmt.Fprintln(w, rt.Resolve(ctx, hash))
	return err
}

// renderPages renders every registered page, reporting progress as it goes.
func renderPages(ctx context.Context, v *views.Views, log logrus.FieldLogger, w io.Writer, rep progress.Reporter) error {
	reg := dashboard.NewRegistry(v)
	rt := router.New(reg, oneShot{}, log)
	pages := reg.Pages()

	rep.Start(len(pages))
	defer rep.Finish()
	for i, page := range pages {
		hash := "#" + page
		rep.Update(i+1, hash)
		if _, err := fmt.Fprintf(w, "<!-- %s -->\n%s\n", hash, rt.Resolve(ctx, hash)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render every page")
	rootCmd.AddCommand(renderCmd)
}
