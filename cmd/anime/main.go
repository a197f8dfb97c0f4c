package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/autumnleaf-ra/Anime-API/internal/buildinfo"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

// requestError: la requête est partie (ou a échoué côté réseau), ce n'est pas
// une erreur d'usage.
type requestError struct {
	status int
	err    error
}

func (e *requestError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("server answered %d %s", e.status, http.StatusText(e.status))
}

func (e *requestError) Unwrap() error { return e.err }

type cli struct {
	server  string
	timeout time.Duration
	out     io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "anime",
		Short:         "Command line client for the anime API",
		Version:       buildinfo.Current().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.server, "server", envOr("ANIME_SERVER_URL", "http://127.0.0.1:8080"), "API base URL")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Second, "HTTP timeout")

	var offset, limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List anime (paged with --offset/--limit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if cmd.Flags().Changed("offset") {
				q.Set("offset", strconv.Itoa(offset))
			}
			if cmd.Flags().Changed("limit") {
				q.Set("limit", strconv.Itoa(limit))
			}
			path := "/api/v1/anime/list"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}
			return c.do(http.MethodGet, path, nil)
		},
	}
	listCmd.Flags().IntVar(&offset, "offset", 0, "Index of the first record")
	listCmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of records")

	var status string
	genreCmd := &cobra.Command{
		Use:   "genre GENRE [GENRE...]",
		Short: "Filter anime by genre, optionally by status",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"genre": args}
			if status != "" {
				body["status"] = strings.ToUpper(status)
			}
			return c.do(http.MethodPost, "/api/v1/anime/genre", body)
		},
	}
	genreCmd.Flags().StringVar(&status, "status", "", "FINISHED, ONGOING, UPCOMING or UNKNOWN")

	root.AddCommand(
		&cobra.Command{
			Use:   "health",
			Short: "Check that the server is up",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.do(http.MethodGet, "/api/v1/health", nil)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show the server build info",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.do(http.MethodGet, "/api/v1/version", nil)
			},
		},
		listCmd,
		&cobra.Command{
			Use:   "search NAME",
			Short: "Search anime by title (case-insensitive)",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.do(http.MethodPost, "/api/v1/anime/search", map[string]any{"name": strings.Join(args, " ")})
			},
		},
		&cobra.Command{
			Use:   "detail ID",
			Short: "Show one anime by id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.do(http.MethodGet, "/api/v1/anime/detail/"+url.PathEscape(args[0]), nil)
			},
		},
		genreCmd,
		&cobra.Command{
			Use:   "episode NAME",
			Short: "Show episode counts for matching titles",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.do(http.MethodPost, "/api/v1/anime/episode", map[string]any{"name": strings.Join(args, " ")})
			},
		},
		&cobra.Command{
			Use:   "year YEAR",
			Short: "List anime released in a given year",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				year, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				return c.do(http.MethodPost, "/api/v1/anime/year", map[string]any{"year": year})
			},
		},
	)
	return root
}

func (c *cli) do(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, strings.TrimRight(c.server, "/")+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: c.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return &requestError{err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return &requestError{err: err}
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, b, "", "  "); err == nil {
		pretty.WriteByte('\n')
		_, _ = c.out.Write(pretty.Bytes())
	} else {
		_, _ = c.out.Write(b)
		_, _ = c.out.Write([]byte("\n"))
	}
	if resp.StatusCode >= 400 {
		return &requestError{status: resp.StatusCode}
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
