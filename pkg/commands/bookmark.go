package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/app"
	"tableflip.dev/worklog/pkg/commands/options"
	"tableflip.dev/worklog/pkg/printers"
)

func addBookmark(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "bookmark",
		Aliases: []string{"bm"},
		Short:   "Manage the bookmark tree",
	}
	addBookmarkAdd(cmd)
	addBookmarkEdit(cmd)
	addBookmarkMove(cmd)
	addBookmarkRemove(cmd)
	addBookmarkTree(cmd)
	topLevel.AddCommand(cmd)
}

func bookmarkIDs(s *session) []string {
	nodes := s.svc.Snapshot().Bookmarks
	out := make([]string, 0, len(nodes))
	for _, b := range nodes {
		out = append(out, b.ID+"\t"+b.Name)
	}
	return out
}

func addBookmarkAdd(parent *cobra.Command) {
	in := app.BookmarkInput{}
	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a folder or a link",
		Example: `
worklog bookmark add Work --folder
worklog bookmark add team wiki --url https://wiki.example.com --parent 7d1c...
worklog bookmark add shared drive --url '\\fileserver\shared'
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a name")
			}
			in.Name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			b, err := s.svc.AddBookmark(in)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(b)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", b.ID, b.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.URL, "url", "", "Link target; an absolute URL or a network path.")
	cmd.Flags().StringVar(&in.ParentID, "parent", "", "Folder to file the node under.")
	cmd.Flags().BoolVar(&in.IsFolder, "folder", false, "Create a folder instead of a link.")
	_ = cmd.RegisterFlagCompletionFunc("parent", idCompletions(bookmarkIDs))
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addBookmarkEdit(parent *cobra.Command) {
	var name, url string
	cmd := &cobra.Command{
		Use:               "edit ID",
		Short:             "Rename a node or change a link's URL",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions(bookmarkIDs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var p app.BookmarkPatch
			if cmd.Flags().Changed("name") {
				p.Name = &name
			}
			if cmd.Flags().Changed("url") {
				p.URL = &url
			}
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			b, err := s.svc.UpdateBookmark(args[0], p)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(b)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s %s\n", b.ID, b.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name.")
	cmd.Flags().StringVar(&url, "url", "", "New URL.")
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addBookmarkMove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mv ID [PARENT]",
		Short: "Move a node under a folder, or to the root when PARENT is omitted",
		Example: `
worklog bookmark mv 7d1c...0005 7d1c...0001
worklog bookmark mv 7d1c...0005
`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: idCompletions(bookmarkIDs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			target := ""
			if len(args) == 2 {
				target = args[1]
			}
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			d, err := s.svc.MoveBookmark(args[0], target)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(d)
			}
			if !d.Permitted {
				return oo.HandleError(errors.New(d.String()))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.String())
			return nil
		},
	}
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addBookmarkRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "rm ID",
		Short:             "Delete a node; its children move to the root",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions(bookmarkIDs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			return oo.HandleError(s.svc.DeleteBookmark(args[0]))
		},
	}
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addBookmarkTree(parent *cobra.Command) {
	ido := &options.IDOptions{}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the bookmark tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			tree := s.svc.Bookmarks()
			if oo.JSON {
				return oo.Print(tree.Branches())
			}
			pp := &printers.PrettyPrint{ShowID: ido.ShowID}
			pp.TitleWithCount("Bookmarks", tree.Len())
			pp.Bookmarks(tree)
			return nil
		},
	}
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}
