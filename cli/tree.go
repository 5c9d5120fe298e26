package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/jesspatton/spectree/filesystem"
	"github.com/jesspatton/spectree/spectree"
	"github.com/spf13/cobra"
)

func newTreeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tree [dir]",
		Short: "Print the spec tree once",
		Long: `The tree command discovers the specs under dir, derives the directory
tree and prints it. Collapsed directories are printed without their children.

Example:
  spectree tree
  spectree tree ./web --search checkout
  spectree tree --separator . --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			logger, err := NewLogger(cfg.Log.Level, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			specs, err := filesystem.Discover(root, filesystem.DiscoverOptions{
				Exclude:     cfg.Exclude,
				ChangedOnly: cfg.ChangedOnly,
				Logger:      logger,
			})
			if err != nil {
				return err
			}

			t, err := spectree.Derive(specs, spectree.Options{
				Separator:     cfg.Separator,
				Search:        cfg.Search,
				CollapsedDirs: cfg.Collapsed,
			})
			if err != nil {
				return fmt.Errorf("derive tree: %w", err)
			}
			logger.Debug("derived tree", "specs", len(specs), "shown", len(spectree.CollectFiles(t.Root)), "dirs", len(t.Registry))

			if asJSON {
				return writeTreeJSON(cmd.OutOrStdout(), t)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTree(t))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

// renderTree draws t with directories first, each annotated with the number
// of specs beneath it.
func renderTree(t *spectree.Tree) string {
	root := tree.Root(".").Enumerator(tree.RoundedEnumerator)
	// levels[d] receives the nodes Walk reports at depth d.
	levels := []*tree.Tree{root}
	t.Walk(func(n spectree.Node, depth int) bool {
		parent := levels[depth]
		switch n := n.(type) {
		case *spectree.DirectoryNode:
			label := fmt.Sprintf("%s (%d)", n.Name, len(spectree.CollectFiles(n)))
			if n.Collapsed {
				parent.Child(label + " ▸")
				return false
			}
			sub := tree.Root(label).Enumerator(tree.RoundedEnumerator)
			parent.Child(sub)
			levels = append(levels[:depth+1], sub)
		case *spectree.FileNode:
			parent.Child(n.Name)
		}
		return true
	})
	return root.String()
}

type jsonNode struct {
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	Kind      string         `json:"kind"`
	Specs     int            `json:"specs,omitempty"`
	Collapsed bool           `json:"collapsed,omitempty"`
	Spec      *spectree.Spec `json:"spec,omitempty"`
	Children  []*jsonNode    `json:"children,omitempty"`
}

func newJSONDir(dir *spectree.DirectoryNode) *jsonNode {
	return &jsonNode{
		Name:      dir.Name,
		Path:      dir.Relative,
		Kind:      dir.Kind().String(),
		Specs:     len(spectree.CollectFiles(dir)),
		Collapsed: dir.Collapsed,
	}
}

func toJSONNode(t *spectree.Tree) *jsonNode {
	root := newJSONDir(t.Root)
	levels := []*jsonNode{root}
	t.Walk(func(n spectree.Node, depth int) bool {
		parent := levels[depth]
		switch n := n.(type) {
		case *spectree.DirectoryNode:
			child := newJSONDir(n)
			parent.Children = append(parent.Children, child)
			levels = append(levels[:depth+1], child)
		case *spectree.FileNode:
			parent.Children = append(parent.Children, &jsonNode{
				Name: n.Name,
				Path: n.Data.Relative,
				Kind: n.Kind().String(),
				Spec: n.Data,
			})
		}
		return true
	})
	return root
}

func writeTreeJSON(w io.Writer, t *spectree.Tree) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toJSONNode(t))
}
