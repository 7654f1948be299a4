package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexdesk/legal-assistant/internal/diff"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/extract"
)

func readDocument(path string) (extract.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return extract.File{}, domain.Invalid("document.read", "%v", err)
	}
	return extract.File{Name: filepath.Base(path), Data: data}, nil
}

func diffCmd(a *app) *cobra.Command {
	var (
		mode      string
		algorithm string
		unified   bool
		context   int
		plain     bool
		htmlPath  string
	)

	cmd := &cobra.Command{
		Use:   "diff LEFT RIGHT",
		Short: "Compare two documents (txt, pdf or docx)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := diff.ParseMode(mode)
			if err != nil {
				return domain.Invalid("diff", "%v", err)
			}
			alg, err := diff.ParseAlgorithm(algorithm)
			if err != nil {
				return domain.Invalid("diff", "%v", err)
			}
			if unified && m != diff.ModeLine {
				return domain.Invalid("diff", "--unified needs line mode")
			}

			left, err := readDocument(args[0])
			if err != nil {
				return err
			}
			right, err := readDocument(args[1])
			if err != nil {
				return err
			}
			lt, rt, err := extract.ExtractPair(cmd.Context(), left, right)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if unified {
				text, err := diff.Unified(lt, rt, args[0], args[1], context)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(w, text)
				return err
			}

			res := diff.NewEngine(alg).Compare(lt, rt, m)
			a.logger.Debug("documents compared",
				zap.Stringer("mode", res.Mode),
				zap.Stringer("algorithm", res.Algorithm),
				zap.Int("added", res.Stats.Added),
				zap.Int("removed", res.Stats.Removed))

			if htmlPath != "" {
				fragment, err := diff.HTML(res)
				if err != nil {
					return err
				}
				if err := os.WriteFile(htmlPath, []byte(fragment), 0o644); err != nil {
					return domain.Persistence("diff.html", htmlPath, err)
				}
				fmt.Fprintf(w, "HTML diff written to %s\n", htmlPath)
			}

			if res.Identical() {
				fmt.Fprintln(w, "The documents are identical.")
				return nil
			}
			if plain {
				if err := diff.WriteText(w, res); err != nil {
					return err
				}
			} else {
				fmt.Fprint(w, diff.Console(res))
			}
			fmt.Fprintf(w, "\n%d unchanged, %d added, %d removed\n", res.Stats.Unchanged, res.Stats.Added, res.Stats.Removed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "line", "comparison unit (line or word)")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "matcher", "alignment algorithm (matcher or myers)")
	cmd.Flags().BoolVarP(&unified, "unified", "u", false, "print a unified diff (line mode only)")
	cmd.Flags().IntVar(&context, "context", 3, "context lines for --unified")
	cmd.Flags().BoolVar(&plain, "plain", false, "print without colour")
	cmd.Flags().StringVar(&htmlPath, "html", "", "also write an HTML side-by-side view to this file")
	return cmd
}
