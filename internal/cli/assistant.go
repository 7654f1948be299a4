package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexdesk/legal-assistant/internal/assistant"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/extract"
)

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// relay writes text chunks to w as they arrive. The answer includes the
// rendered error chunk, if any; err reports the failure.
func relay(w io.Writer, s *assistant.Stream) (answer string, err error) {
	var b strings.Builder
	for c := range s.All() {
		switch c.Kind {
		case assistant.ChunkText:
			b.WriteString(c.Text)
			fmt.Fprint(w, c.Text)
		case assistant.ChunkError:
			b.WriteString(c.Text)
			fmt.Fprintln(w, c.Text)
			return b.String(), c.Err
		}
	}
	fmt.Fprintln(w)
	return b.String(), nil
}

// answer prints a whole stream, optionally rendered as markdown once complete.
func answer(w io.Writer, s *assistant.Stream, render bool) (string, error) {
	if !render {
		return relay(w, s)
	}
	text, err := s.Collect()
	if err != nil {
		fmt.Fprintln(w, strings.TrimSpace(text))
		return text, err
	}
	out, rerr := renderMarkdown(text)
	if rerr != nil {
		out = text + "\n"
	}
	fmt.Fprint(w, out)
	return text, nil
}

func askCmd(a *app) *cobra.Command {
	var render bool
	c := &cobra.Command{
		Use:   "ask",
		Short: "Ask the AI assistant about a case or a legal provision",
	}
	c.PersistentFlags().BoolVar(&render, "render", false, "render the answer as formatted markdown")

	var year string
	caseCmd := &cobra.Command{
		Use:   "case NAME",
		Short: "Summarise a case: facts, holding and significance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.assistant(cmd.Context()).CaseSearch(cmd.Context(), args[0], year)
			_, err := answer(cmd.OutOrStdout(), s, render)
			return err
		},
	}
	caseCmd.Flags().StringVar(&year, "year", "", "year of decision")

	provisionCmd := &cobra.Command{
		Use:   "provision TERM",
		Short: "Explain a section, article or legal term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.assistant(cmd.Context()).ProvisionLookup(cmd.Context(), args[0])
			_, err := answer(cmd.OutOrStdout(), s, render)
			return err
		},
	}

	c.AddCommand(caseCmd, provisionCmd)
	return c
}

const chatHelp = `Commands:
  /load PATH   add a document to the conversation context
  /drop NAME   remove a loaded document
  /files       list loaded documents
  /clear       forget the conversation and every document
  /exit        quit`

func chatCmd(a *app) *cobra.Command {
	var (
		files   []string
		session string
		render  bool
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive legal assistant with document context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := loadSession(session)
			if err != nil {
				return err
			}
			for _, f := range files {
				if state, err = loadContextFile(state, f); err != nil {
					return err
				}
			}

			r := &repl{
				app:     a,
				asst:    a.assistant(cmd.Context()),
				out:     cmd.OutOrStdout(),
				state:   state,
				session: session,
				render:  render,
			}
			return r.run(cmd, cmd.InOrStdin())
		},
	}
	cmd.Flags().StringSliceVar(&files, "file", nil, "documents to load as context (txt, pdf, docx)")
	cmd.Flags().StringVar(&session, "session", "", "JSON file that keeps the conversation between runs")
	cmd.Flags().BoolVar(&render, "render", false, "render answers as formatted markdown")
	return cmd
}

type repl struct {
	app     *app
	asst    *assistant.Assistant
	out     io.Writer
	state   assistant.ChatState
	session string
	render  bool
}

func (r *repl) run(cmd *cobra.Command, in io.Reader) error {
	fmt.Fprintln(r.out, "LexDesk legal assistant. Type /help for commands.")
	if names := r.state.FileNames(); len(names) > 0 {
		fmt.Fprintf(r.out, "Context: %s\n", strings.Join(names, ", "))
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Fprint(r.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(r.out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			quit, err := r.command(line)
			if err != nil {
				fmt.Fprintf(r.out, "Error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		next, stream := r.asst.Chat(cmd.Context(), r.state, line)
		text, err := answer(r.out, stream, r.render)
		if err != nil && domain.IsKind(err, domain.KindInvalidInput) {
			continue
		}
		if err != nil {
			r.app.logger.Warn("chat generation failed", zap.Error(err))
		}
		r.state = assistant.Finish(next, text)
		if err := saveSession(r.session, r.state); err != nil {
			return err
		}
	}
}

func (r *repl) command(line string) (quit bool, err error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/exit", "/quit":
		return true, nil
	case "/help":
		fmt.Fprintln(r.out, chatHelp)
	case "/files":
		names := r.state.FileNames()
		if len(names) == 0 {
			fmt.Fprintln(r.out, "No documents loaded.")
		}
		for _, n := range names {
			fmt.Fprintf(r.out, "- %s (%d characters)\n", n, len([]rune(r.state.Files[n])))
		}
	case "/load":
		if arg == "" {
			return false, domain.Invalid("chat.load", "usage: /load PATH")
		}
		state, err := loadContextFile(r.state, arg)
		if err != nil {
			return false, err
		}
		r.state = state
		fmt.Fprintf(r.out, "Loaded %s\n", arg)
	case "/drop":
		if _, ok := r.state.Files[arg]; !ok {
			return false, domain.NotFound("chat.drop", "no document named %q", arg)
		}
		r.state = r.state.WithoutFile(arg)
		fmt.Fprintf(r.out, "Removed %s\n", arg)
	case "/clear":
		r.state = r.state.Clear()
		fmt.Fprintln(r.out, "Conversation cleared.")
	default:
		return false, domain.Invalid("chat.command", "unknown command %s (try /help)", name)
	}
	return false, saveSession(r.session, r.state)
}

func loadContextFile(state assistant.ChatState, path string) (assistant.ChatState, error) {
	f, err := readDocument(path)
	if err != nil {
		return state, err
	}
	text, err := extract.ExtractFile(f)
	if err != nil {
		return state, err
	}
	return state.WithFile(f.Name, text), nil
}

func loadSession(path string) (assistant.ChatState, error) {
	var state assistant.ChatState
	if path == "" {
		return state, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return state, domain.Persistence("chat.session", path, err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, domain.Persistence("chat.session", path, err)
	}
	return state, nil
}

func saveSession(path string, state assistant.ChatState) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return domain.Persistence("chat.session", path, err)
	}
	return nil
}
